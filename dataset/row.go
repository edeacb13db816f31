package dataset

import (
	"hash/fnv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used by the source CSV.
const DateLayout = "2006-01-02"

type Row struct {
	Continent string
	Location  string
	Date      time.Time
	HasDate   bool
	DateRaw   string

	cols    []string
	metrics [numMetrics]Value
	id      uint64
}

// NewRow builds a row from already split values. Used by tests and by
// callers that do not start from CSV.
func NewRow(continent, location, date string, metrics map[Metric]float64) Row {
	r := Row{
		Continent: continent,
		Location:  location,
		DateRaw:   date,
	}
	r.Date, r.HasDate = parseDate(date)
	for m, v := range metrics {
		if m >= 0 && m < numMetrics {
			r.metrics[m] = Value{V: v, Valid: true}
		}
	}
	r.cols = r.defaultCols()
	r.id = r.computeID()
	return r
}

// Metric returns the value of m and whether the cell held a number.
func (r Row) Metric(m Metric) (float64, bool) {
	if m < 0 || m >= numMetrics {
		return 0, false
	}
	v := r.metrics[m]
	return v.V, v.Valid
}

// ID is a stable hash of the raw cells, used as a row key in the UI.
func (r Row) ID() uint64 { return r.id }

// Cols returns the raw CSV cells in header order.
func (r Row) Cols() []string { return r.cols }

func (r Row) computeID() uint64 {
	h := fnv.New64a()
	for _, col := range r.cols {
		norm := strings.ToLower(strings.TrimSpace(col))
		h.Write([]byte(norm))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// defaultCols lays the row out in DefaultHeader order.
func (r Row) defaultCols() []string {
	cols := make([]string, 0, 3+numMetrics)
	cols = append(cols, r.Continent, r.Location, r.DateRaw)
	for m := Metric(0); m < numMetrics; m++ {
		cols = append(cols, formatValue(r.metrics[m]))
	}
	return cols
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
