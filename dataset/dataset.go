// Package dataset holds the COVID-19 table, its CSV codec and the filter
// that every chart consumes.
package dataset

import (
	"sort"
	"time"
)

// DefaultHeader is the column layout used for rows built with NewRow.
var DefaultHeader = func() []string {
	h := []string{"continent", "location", "date"}
	for _, m := range Metrics() {
		h = append(h, m.Column())
	}
	return h
}()

type Dataset struct {
	Header []string
	Rows   []Row

	// Skipped counts malformed CSV records dropped during parsing.
	Skipped int
	// WhereErrors counts rows of the Apply that produced this dataset whose
	// where expression failed to evaluate. They are excluded.
	WhereErrors int
}

// New wraps rows with the default header.
func New(rows []Row) *Dataset {
	return &Dataset{Header: DefaultHeader, Rows: rows}
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Continents returns the sorted distinct continents.
func (d *Dataset) Continents() []string {
	if d == nil {
		return nil
	}
	return distinct(d.Rows, func(r Row) (string, bool) { return r.Continent, r.Continent != "" })
}

// Locations returns the sorted distinct locations of rows whose continent is
// selected, so the country picker follows the continent picker.
func (d *Dataset) Locations(continents Selection) []string {
	if d == nil {
		return nil
	}
	return distinct(d.Rows, func(r Row) (string, bool) {
		return r.Location, r.Location != "" && continents.Contains(r.Continent)
	})
}

// DateBounds returns the earliest and latest parsed dates.
func (d *Dataset) DateBounds() (min, max time.Time, ok bool) {
	if d == nil {
		return
	}
	for _, r := range d.Rows {
		if !r.HasDate {
			continue
		}
		if !ok {
			min, max, ok = r.Date, r.Date, true
			continue
		}
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return
}

func distinct(rows []Row, key func(Row) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range rows {
		k, ok := key(r)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
