package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
)

// setWhere compiles expr and filters with it. An empty expr clears the
// predicate. On a compile error the previous predicate stays.
func (m *model) setWhere(expr string) tea.Cmd {
	logging.Infof("Setting where expression to: %q", expr)
	if expr == "" {
		return m.clearWhere()
	}
	w, err := dataset.CompileWhere(expr)
	if err != nil {
		logging.Warnf("where %q rejected: %v", expr, err)
		return m.startNotice("Invalid expression: "+err.Error(), "error", noticeDuration)
	}
	m.data.query.Where = w
	m.applyFilter()
	if n := m.data.filtered.WhereErrors; n > 0 {
		return m.startNotice(fmt.Sprintf("Filter applied, %d rows could not be evaluated", n), "warn", noticeDuration)
	}
	return m.startNotice("Filter applied", "success", noticeDuration)
}

func (m *model) clearWhere() tea.Cmd {
	if m.data.query.Where == nil {
		return nil
	}
	m.data.query.Where = nil
	m.applyFilter()
	return m.startNotice("Filter cleared", "info", noticeDuration)
}

// applyFilter re-runs the dataset filter and resets the rows cursor.
func (m *model) applyFilter() {
	if !m.data.loaded() {
		return
	}
	m.data.apply(m.now())
	logging.Debugf("applyFilter: %s/%s/%s where=%q -> %d rows, %d where errors",
		m.data.query.Continents, m.data.query.Countries, m.data.query.Range,
		m.data.query.Where.String(), m.data.filtered.Len(), m.data.filtered.WhereErrors)
	if m.data.filtered.Len() == 0 {
		m.cursor = -1
	} else {
		m.cursor = 0
	}
	m.viewport.GotoTop()
	m.refreshView()
}
