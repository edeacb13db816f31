package main

import (
	"time"

	"github.com/andareed/siftly-covid/dataset"
)

type dataState struct {
	full     *dataset.Dataset // as loaded, never modified
	query    dataset.Query
	filtered *dataset.Dataset
	header   []ColumnMeta // rows view columns, rebuilt on every filter
	loadedAt time.Time

	dateMin       time.Time
	dateMax       time.Time
	hasDateBounds bool
}

func (d *dataState) setDataset(ds *dataset.Dataset, at time.Time) {
	d.full = ds
	d.loadedAt = at
	d.dateMin, d.dateMax, d.hasDateBounds = ds.DateBounds()
}

func (d *dataState) loaded() bool { return d.full != nil }

// apply recomputes the filtered view from the full dataset and the current
// query.
func (d *dataState) apply(now time.Time) {
	d.filtered = dataset.Apply(d.full, d.query, now)
	d.header = buildColumns(d.filtered)
}
