package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/andareed/siftly-covid/dataset"
)

// parseQuery reads continent, country, days and where from the URL. An
// absent list, or "All" anywhere in it, means All. Absent days falls back to
// defaultRange.
func parseQuery(values url.Values, defaultRange dataset.DateRange) (dataset.Query, error) {
	q := dataset.Query{
		Continents: dataset.ParseSelection(nonEmpty(values["continent"])),
		Countries:  dataset.ParseSelection(nonEmpty(values["country"])),
		Range:      defaultRange,
	}
	if raw := strings.TrimSpace(values.Get("days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("days %q: %w", raw, dataset.ErrInvalidRange)
		}
		r, err := dataset.ParseRange(days)
		if err != nil {
			return q, err
		}
		q.Range = r
	}
	if raw := strings.TrimSpace(values.Get("where")); raw != "" {
		w, err := dataset.CompileWhere(raw)
		if err != nil {
			return q, fmt.Errorf("where: %w", err)
		}
		q.Where = w
	}
	return q, nil
}

// nonEmpty drops blank values so "?country=" behaves like an absent list.
func nonEmpty(vs []string) []string {
	out := vs[:0:0]
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
