package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-covid/charts"
	"github.com/andareed/siftly-covid/dataset"
)

// cellText is the display text of one column of row.
func cellText(row dataset.Row, col ColumnMeta) string {
	switch col.Index {
	case 0:
		return row.Continent
	case 1:
		return row.Location
	case 2:
		return row.DateRaw
	}
	v, ok := row.Metric(col.Metric)
	if !ok {
		return "·"
	}
	if v == float64(int64(v)) {
		return charts.FormatCount(v)
	}
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
}

// renderRow joins the visible cells of row. Cells are single line, so the
// height is always 1.
func renderRow(row dataset.Row, style lipgloss.Style, cols []ColumnMeta) string {
	var rendered []string
	for _, meta := range cols {
		if !meta.Visible || meta.Width <= 0 {
			continue
		}
		text := cellText(row, meta)
		cell := style.Width(meta.Width).MaxHeight(1).Render(truncateCell(text, meta.Width-2))
		rendered = append(rendered, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderColumnHeader(style lipgloss.Style, cols []ColumnMeta) string {
	var cells []string
	for _, col := range cols {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, style.Width(col.Width).MaxHeight(1).Render(truncateCell(col.Name, col.Width-2)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func truncateCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return truncatePlain(s, w)
}
