package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-covid/logging"
)

func (m *model) rowCount() int { return m.data.filtered.Len() }

func (m *model) checkViewPortHasData() bool {
	return m.rowCount() > 0
}

func (m *model) jumpToStart() {
	logging.Debug("jumpToStart called...")
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = 0
}

func (m *model) jumpToEnd() {
	logging.Debug("jumpToEnd called...")
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = m.rowCount() - 1
}

// jumpToLine moves the cursor to the 1-based row of the filtered table.
func (m *model) jumpToLine(lineNo int) tea.Cmd {
	logging.Debugf("jumpToLine %d", lineNo)
	if !m.checkViewPortHasData() {
		return m.startNotice("No rows to jump to", "warn", noticeDuration)
	}
	if lineNo <= 0 || lineNo > m.rowCount() {
		return m.startNotice(fmt.Sprintf("Row %d out of bounds", lineNo), "warn", noticeDuration)
	}
	m.cursor = lineNo - 1
	m.ui.view = viewRows
	return nil
}

func (m *model) moveCursor(delta int) {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, m.rowCount()-1)
}

func (m *model) pageDown() {
	page := max(1, m.lastVisibleRowCount)
	m.moveCursor(page)
}

func (m *model) pageUp() {
	page := max(1, m.lastVisibleRowCount)
	m.moveCursor(-page)
}
