package dataset

import "time"

// Query is everything a user can select. The zero value matches nothing;
// use DefaultQuery for the dashboard's initial state.
type Query struct {
	Continents Selection
	Countries  Selection
	Range      DateRange
	Where      *Where
}

func DefaultQuery() Query {
	return Query{
		Continents: All(),
		Countries:  All(),
		Range:      DefaultRange,
	}
}

// Apply returns the rows of ds that pass every stage of q, in their
// original order. ds is never modified. Rows with no parseable date never
// pass the date stage.
func Apply(ds *Dataset, q Query, now time.Time) *Dataset {
	out := &Dataset{Header: DefaultHeader}
	if ds == nil {
		return out
	}
	if len(ds.Header) > 0 {
		out.Header = ds.Header
	}
	out.Rows = make([]Row, 0, len(ds.Rows))

	cutoff := q.Range.Cutoff(now)
	for _, row := range ds.Rows {
		if !includeRow(row, q, cutoff) {
			continue
		}
		ok, err := q.Where.eval(row)
		if err != nil {
			out.WhereErrors++
			continue
		}
		if !ok {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// includeRow applies the selection and date stages.
func includeRow(row Row, q Query, cutoff time.Time) bool {
	if row.Continent == "" {
		return false
	}
	if !q.Continents.Contains(row.Continent) {
		return false
	}
	if !q.Countries.Contains(row.Location) {
		return false
	}
	if !row.HasDate || row.Date.Before(cutoff) {
		return false
	}
	return true
}
