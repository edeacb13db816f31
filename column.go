package main

import (
	"github.com/andareed/siftly-covid/dataset"
)

type ColumnRole int

const (
	RoleNormal  ColumnRole = iota
	RolePrimary            // location
	RoleSecondary
)

// ColumnMeta describes one rows-view column. Metric is only meaningful when
// Index >= fixedColumns.
type ColumnMeta struct {
	Name     string
	Index    int
	Role     ColumnRole
	Metric   dataset.Metric
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

const fixedColumns = 3 // continent, location, date

func detectRole(name string) ColumnRole {
	switch name {
	case "location":
		return RolePrimary
	case "continent", "date":
		return RoleSecondary
	default:
		return RoleNormal
	}
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RolePrimary:
		return 18
	case RoleSecondary:
		return 12
	default:
		return 10
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RolePrimary:
		return 3.0
	case RoleSecondary:
		return 1.5
	default:
		return 1.0
	}
}

func buildColumns(ds *dataset.Dataset) []ColumnMeta {
	names := []string{"continent", "location", "date"}
	cols := make([]ColumnMeta, 0, len(names)+len(dataset.Metrics()))
	for i, name := range names {
		role := detectRole(name)
		cols = append(cols, ColumnMeta{
			Name:     name,
			Index:    i,
			Role:     role,
			Visible:  true,
			MinWidth: defaultMinWidthForRole(role),
			Weight:   defaultWeightForRole(role),
		})
	}
	for _, m := range dataset.Metrics() {
		cols = append(cols, ColumnMeta{
			Name:     m.Column(),
			Index:    len(cols),
			Role:     RoleNormal,
			Metric:   m,
			Visible:  true,
			MinWidth: defaultMinWidthForRole(RoleNormal),
			Weight:   defaultWeightForRole(RoleNormal),
		})
	}
	if ds != nil {
		markEmptyColumns(cols, ds.Rows)
	}
	return cols
}

// markEmptyColumns hides metric columns with no value in any row.
func markEmptyColumns(cols []ColumnMeta, rows []dataset.Row) {
	if len(rows) == 0 {
		return
	}
	for i := range cols {
		if cols[i].Index < fixedColumns {
			continue
		}
		hasData := false
		for _, row := range rows {
			if _, ok := row.Metric(cols[i].Metric); ok {
				hasData = true
				break
			}
		}
		if !hasData {
			cols[i].Visible = false
			cols[i].Width = 0
			cols[i].Weight = 0
		}
	}
}

// layoutColumns sizes visible columns to totalWidth: every column gets its
// MinWidth, the rest is shared by weight. When even the minimums do not fit,
// trailing columns are hidden until they do.
func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		if minSum+cols[i].MinWidth > totalWidth && cols[i].Role == RoleNormal {
			cols[i].Visible = false
			cols[i].Width = 0
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		for i := range cols {
			if !cols[i].Visible {
				continue
			}
			cols[i].Width = min(cols[i].MinWidth, totalWidth)
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
