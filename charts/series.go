package charts

import (
	"sort"
	"time"

	"github.com/andareed/siftly-covid/dataset"
)

// Daily holds per-date totals for one or more metrics. Values[i][j] is the
// sum of metric i over every row dated Dates[j].
type Daily struct {
	Metrics []dataset.Metric
	Dates   []time.Time
	Values  [][]float64
}

func (d Daily) Len() int { return len(d.Dates) }

// Totals returns the stacked total per date.
func (d Daily) Totals() []float64 {
	out := make([]float64, len(d.Dates))
	for _, vals := range d.Values {
		for j, v := range vals {
			out[j] += v
		}
	}
	return out
}

// Max is the largest per-date stacked total, or 0 when empty.
func (d Daily) Max() float64 {
	max := 0.0
	for _, v := range d.Totals() {
		if v > max {
			max = v
		}
	}
	return max
}

// DailySums groups rows by date and sums each metric. Absent values add
// nothing, and a date only appears if at least one row carries a value for
// one of the metrics. Dates are ascending.
func DailySums(ds *dataset.Dataset, metrics ...dataset.Metric) Daily {
	out := Daily{Metrics: metrics, Values: make([][]float64, len(metrics))}
	if ds == nil || len(metrics) == 0 {
		return out
	}

	type bucket struct {
		date time.Time
		sums []float64
	}
	byDate := make(map[time.Time]*bucket)
	for _, row := range ds.Rows {
		if !row.HasDate {
			continue
		}
		for i, m := range metrics {
			v, ok := row.Metric(m)
			if !ok {
				continue
			}
			b := byDate[row.Date]
			if b == nil {
				b = &bucket{date: row.Date, sums: make([]float64, len(metrics))}
				byDate[row.Date] = b
			}
			b.sums[i] += v
		}
	}

	buckets := make([]*bucket, 0, len(byDate))
	for _, b := range byDate {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].date.Before(buckets[j].date) })

	out.Dates = make([]time.Time, len(buckets))
	for i := range metrics {
		out.Values[i] = make([]float64, len(buckets))
	}
	for j, b := range buckets {
		out.Dates[j] = b.date
		for i := range metrics {
			out.Values[i][j] = b.sums[i]
		}
	}
	return out
}

type Bubble struct {
	Location       string
	Continent      string
	GDPPerCapita   float64
	LifeExpectancy float64
	Population     float64
}

// Bubbles returns one point per location: the latest dated row that has GDP,
// life expectancy and population, with GDP above zero so it can sit on a log
// axis. Sorted by population ascending so large bubbles draw last.
func Bubbles(ds *dataset.Dataset) []Bubble {
	if ds == nil {
		return nil
	}
	type latest struct {
		b    Bubble
		date time.Time
	}
	byLoc := make(map[string]latest)
	for _, row := range ds.Rows {
		gdp, ok1 := row.Metric(dataset.GDPPerCapita)
		life, ok2 := row.Metric(dataset.LifeExpectancy)
		pop, ok3 := row.Metric(dataset.Population)
		if !ok1 || !ok2 || !ok3 || gdp <= 0 {
			continue
		}
		prev, seen := byLoc[row.Location]
		if seen && !row.Date.After(prev.date) {
			continue
		}
		byLoc[row.Location] = latest{
			b: Bubble{
				Location:       row.Location,
				Continent:      row.Continent,
				GDPPerCapita:   gdp,
				LifeExpectancy: life,
				Population:     pop,
			},
			date: row.Date,
		}
	}

	out := make([]Bubble, 0, len(byLoc))
	for _, l := range byLoc {
		out = append(out, l.b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Population != out[j].Population {
			return out[i].Population < out[j].Population
		}
		return out[i].Location < out[j].Location
	})
	return out
}

// resample maps n values onto cols columns. Fewer values than columns widen
// each bar; more values are averaged per column.
func resample(values []float64, cols int) []float64 {
	n := len(values)
	if n == 0 || cols <= 0 {
		return nil
	}
	out := make([]float64, cols)
	for c := 0; c < cols; c++ {
		lo := c * n / cols
		hi := (c + 1) * n / cols
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[c] = sum / float64(hi-lo)
	}
	return out
}
