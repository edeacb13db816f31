package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-covid/dataset"
)

// findCountry resolves query to the dataset's spelling of a location among
// the selected continents. An exact case-insensitive match wins, otherwise a
// unique prefix.
func (m *model) findCountry(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || !m.data.loaded() {
		return "", false
	}
	var prefixed []string
	for _, loc := range m.data.full.Locations(m.data.query.Continents) {
		lower := strings.ToLower(loc)
		if lower == q {
			return loc, true
		}
		if strings.HasPrefix(lower, q) {
			prefixed = append(prefixed, loc)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}
	return "", false
}

func (m *model) addCountry(query string) tea.Cmd {
	if query == "" {
		return nil
	}
	name, ok := m.findCountry(query)
	if !ok {
		return m.startNotice(fmt.Sprintf("No single country matches %q", query), "warn", noticeDuration)
	}
	sel := m.data.query.Countries
	if !sel.IsAll() && sel.Contains(name) {
		return m.startNotice(name+" is already selected", "info", noticeDuration)
	}
	if sel.IsAll() {
		sel = dataset.Subset(name)
	} else {
		sel = dataset.Subset(append(sel.Names(), name)...)
	}
	m.data.query.Countries = sel
	m.applyFilter()
	return m.startNotice("Added "+name, "success", noticeDuration)
}
