package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-covid/dataset"
)

// stepRange moves the date range one step through the enumerated set.
func (m *model) stepRange(longer bool) tea.Cmd {
	cur := m.data.query.Range
	next := cur.Shorter()
	if longer {
		next = cur.Longer()
	}
	if next == cur {
		edge := "shortest"
		if longer {
			edge = "longest"
		}
		return m.startNotice("Already at the "+edge+" range", "info", noticeDuration)
	}
	m.setRange(next)
	return nil
}

func (m *model) setRange(r dataset.DateRange) {
	m.data.query.Range = r
	m.applyFilter()
}

// rangeScrubberLine shows where the selected window falls inside the span of
// the loaded data:
//
//	2020-01-01  ---------------[=====]  2023-06-01
func (m *model) rangeScrubberLine(width int) string {
	if !m.data.hasDateBounds {
		return "Dates: n/a"
	}
	lo, hi := m.data.dateMin, m.data.dateMax
	cutoff := m.data.query.Range.Cutoff(m.now())
	end := dayOf(m.now())

	minLabel := lo.Format(dataset.DateLayout)
	maxLabel := hi.Format(dataset.DateLayout)
	padding := 2
	barWidth := width - len(minLabel) - len(maxLabel) - padding*2
	if barWidth < 10 {
		return fmt.Sprintf("Window: %s - %s", cutoff.Format(dataset.DateLayout), end.Format(dataset.DateLayout))
	}

	span := hi.Sub(lo)
	if span <= 0 {
		return fmt.Sprintf("Dates: %s", minLabel)
	}

	pos := func(t time.Time) int {
		if t.Before(lo) {
			t = lo
		}
		if t.After(hi) {
			t = hi
		}
		return int(float64(barWidth-1) * t.Sub(lo).Seconds() / span.Seconds())
	}

	bar := []rune(strings.Repeat("-", barWidth))
	if cutoff.After(hi) {
		// window lies entirely after the data
		return fmt.Sprintf("%s  %s  %s", minLabel, string(bar), maxLabel) + "  (no data in window)"
	}
	startPos, endPos := pos(cutoff), pos(end)
	for i := startPos; i <= endPos; i++ {
		bar[i] = '='
	}
	bar[startPos] = '['
	bar[endPos] = ']'

	return fmt.Sprintf("%s  %s  %s", minLabel, string(bar), maxLabel)
}

func (m *model) rangeStatusLabel() string {
	return fmt.Sprintf("Window: %s (from %s)", m.data.query.Range.Label(),
		m.data.query.Range.Cutoff(m.now()).Format(dataset.DateLayout))
}

func dayOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
