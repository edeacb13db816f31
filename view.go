package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/andareed/siftly-covid/charts"
	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
)

const (
	appTitle       = "Covid-19 Infographics"
	sourceLabel    = "Source: https://covid.ourworldindata.org"
	sidebarMaxList = 4
)

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.dialogOpen() {
		w, h := m.terminalWidth, m.terminalHeight
		return lipgloss.Place(
			w, h,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	contentW := max(1, m.terminalWidth-2)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.mainView())
	parts := []string{m.headerView(contentW), body, m.footerView(contentW)}
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// headerView is the title, the attribution line and the date window
// scrubber, always headerLines tall.
func (m *model) headerView(width int) string {
	title := titleStyle.Render(appTitle)
	if m.data.loaded() {
		loaded := sourceStyle.Render("loaded " + m.data.loadedAt.Format("2006-01-02 15:04"))
		gap := width - lipgloss.Width(title) - lipgloss.Width(loaded)
		if gap > 0 {
			title += strings.Repeat(" ", gap) + loaded
		}
	}
	scrubber := ""
	if m.data.loaded() {
		scrubber = dimStyle.Render(m.rangeScrubberLine(width))
	}
	lines := []string{
		ansi.Truncate(title, width, ""),
		ansi.Truncate(sourceStyle.Render(sourceLabel), width, ""),
		ansi.Truncate(scrubber, width, ""),
	}
	return strings.Join(lines, "\n")
}

func (m *model) sidebarView() string {
	_, h := m.mainSize()
	inner := sidebarWidth - 4 // border and padding

	var lines []string
	add := func(label string, values ...string) {
		lines = append(lines, sidebarLabel.Render(label))
		for _, v := range values {
			for _, l := range strings.Split(wordwrap.String(v, inner), "\n") {
				lines = append(lines, sidebarValue.Render(" "+truncatePlain(l, inner-1)))
			}
		}
	}

	q := m.data.query
	add("Continents", selectionLines(q.Continents)...)
	add("Countries", selectionLines(q.Countries)...)
	add("Date range", q.Range.Label(), "since "+q.Range.Cutoff(m.now()).Format(dataset.DateLayout))
	if q.Where != nil {
		add("Where", q.Where.String())
	}
	if m.data.loaded() {
		add("Rows", charts.FormatCount(float64(m.data.filtered.Len()))+" of "+charts.FormatCount(float64(m.data.full.Len())))
	}
	view := "charts"
	if m.ui.view == viewRows {
		view = "rows"
	}
	add("View", view+" (v to switch)")

	if len(lines) > h {
		lines = lines[:h]
	}
	return sidebarStyle.Width(sidebarWidth - 2).Height(h).Render(strings.Join(lines, "\n"))
}

// selectionLines lists a selection for the sidebar, capped at a few names.
func selectionLines(s dataset.Selection) []string {
	if s.IsAll() || s.IsEmpty() {
		return []string{s.String()}
	}
	names := s.Names()
	if len(names) <= sidebarMaxList {
		return names
	}
	out := append([]string(nil), names[:sidebarMaxList-1]...)
	return append(out, fmt.Sprintf("+%d more", len(names)-sidebarMaxList+1))
}

func (m *model) mainView() string {
	w, h := m.mainSize()
	var content string
	switch {
	case m.ui.loading:
		content = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Fetching "+m.src.Describe())
	case m.ui.loadErr != nil:
		content = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.errorView(w))
	case !m.data.loaded():
		content = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render("No data"))
	default:
		content = m.viewport.View()
	}
	return tableStyle.Render(content)
}

func (m *model) errorView(width int) string {
	wrapW := max(10, min(width-4, 72))
	lines := []string{
		errorTitleStyle.Render("Failed to load data"),
		"",
		wordwrap.String(m.ui.loadErr.Error(), wrapW),
		"",
		dimStyle.Render("Press R to retry · q to quit"),
	}
	return strings.Join(lines, "\n")
}

// renderCharts stacks the overview, both tab groups and the scatter plot.
func (m *model) renderCharts(width int) string {
	ds := m.data.filtered
	parts := []string{charts.Render(charts.Overview, ds, width, chartHeight), ""}
	for gi, g := range charts.TabGroups {
		parts = append(parts, m.tabBar(gi, width))
		parts = append(parts, charts.Render(g.Panels[m.ui.tabs[gi]], ds, width, chartHeight), "")
	}
	parts = append(parts, charts.Render(charts.GDPLife, ds, width, scatterHeight))
	return strings.Join(parts, "\n")
}

func (m *model) tabBar(group, width int) string {
	g := charts.TabGroups[group]
	label := groupStyle.Render("  " + g.Name + " ")
	if group == m.ui.groupFocus {
		label = focusedGroupStyle.Render("▸ " + g.Name + " ")
	}
	tabs := []string{label}
	for i, p := range g.Panels {
		st := tabStyle
		if i == m.ui.tabs[group] {
			st = activeTabStyle
		}
		tabs = append(tabs, st.Render(p.Tab))
	}
	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), width, "")
}

// footerView renders the 2-line footer.
func (m *model) footerView(width int) string {
	st := FooterState{
		Source:     m.src.Describe(),
		WhereLabel: m.data.query.Where.String(),
		RangeLabel: m.data.query.Range.Label(),
		Row:        m.cursor + 1,
		TotalRows:  m.data.filtered.Len(),
		Legend:     "(? help · c continent · o country · d range · v view · e/x export)",
	}
	switch {
	case m.ui.mode == modeCommand:
		st.Mode = m.ui.command.cmd
		st.ModeInput = m.activeCommandLine()
	case m.ui.loading:
		st.ModeLabel = "LOADING"
	case m.ui.loadErr != nil:
		st.ModeLabel = "ERROR"
	case m.ui.view == viewRows:
		st.ModeLabel = "ROWS"
	default:
		st.ModeLabel = "CHARTS"
	}

	switch {
	case m.ui.noticeMsg != "":
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	case m.ui.loadErr != nil:
		st.StatusMessage = noticeText("Load failed: "+m.ui.loadErr.Error(), noticeError)
	case m.data.loaded():
		st.StatusMessage = m.rangeStatusLabel()
	}

	if logging.IsDebugMode() {
		debug := fmt.Sprintf(" dbg term=%dx%d vp=%dx%d yoff=%d cur=%d vis=%d-%d page=%d curH=%d free=%d above=%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.viewport.YOffset, m.cursor, m.ui.visibleStart, m.ui.visibleEnd, m.pageRowSize,
			m.ui.debugCursorHeight, m.ui.debugHeightFree, m.ui.debugDesiredAboveHeight,
		)
		st.Legend = st.Legend + " |" + debug
	}

	return RenderFooter(width, st, DefaultFooterStyles())
}

// layoutCols sizes a copy of the rows-view columns to width.
func (m *model) layoutCols(width int) []ColumnMeta {
	cols := append([]ColumnMeta(nil), m.data.header...)
	return layoutColumns(cols, width)
}

func (m *model) gutterWidth() int {
	return len(fmt.Sprintf("%d", m.rowCount())) + 1
}

func (m *model) renderRowAt(idx int, cols []ColumnMeta, width int) (string, int, bool) {
	if idx < 0 || idx >= m.rowCount() {
		return "", 0, false
	}
	row := m.data.filtered.Rows[idx]
	gutter := fmt.Sprintf("%*d ", m.gutterWidth()-1, idx+1)
	line := ansi.Truncate(gutter+renderRow(row, cellStyle, cols), width, "")
	style := rowStyle
	if idx == m.cursor {
		style = rowSelectedStyle
	}
	return style.Width(width).MaxHeight(1).Render(line), 1, true
}

// renderViewport draws the column header and the rows around the cursor.
func (m *model) renderViewport() string {
	width := m.viewport.Width
	height := max(1, m.viewport.Height-1)
	cols := m.layoutCols(width - m.gutterWidth())

	header := headerStyle.Render(ansi.Truncate(strings.Repeat(" ", m.gutterWidth())+renderColumnHeader(cellStyle, cols), width, ""))
	if m.rowCount() == 0 {
		m.ui.visibleStart, m.ui.visibleEnd = 0, 0
		return header + "\n" + dimStyle.Render("No rows match the current filters")
	}
	if m.cursor < 0 || m.cursor >= m.rowCount() {
		m.cursor = 0
	}

	renderedRows, startIdx, endIdx := m.computeVisibleRows(m.cursor, height, cols, width)
	m.ui.visibleStart = startIdx
	m.ui.visibleEnd = endIdx
	m.pageRowSize = len(renderedRows)
	m.lastVisibleRowCount = len(renderedRows)

	return header + "\n" + strings.Join(renderedRows, "\n")
}

// computeVisibleRows fills the viewport around the cursor, keeping it near
// the middle when there are rows on both sides.
func (m *model) computeVisibleRows(cursor, viewportHeight int, cols []ColumnMeta, width int) ([]string, int, int) {
	cursorRenderedRow, cursorHeight, ok := m.renderRowAt(cursor, cols, width)
	if !ok {
		return nil, 0, 0
	}

	heightFree := viewportHeight - cursorHeight
	desiredAboveHeight := max(0, heightFree/2)
	m.ui.debugCursorHeight = cursorHeight
	m.ui.debugHeightFree = heightFree
	m.ui.debugDesiredAboveHeight = desiredAboveHeight
	upIndex := cursor - 1
	downIndex := cursor + 1

	var above []string
	var below []string

	aboveHeight := 0
	for heightFree > 0 && (upIndex >= 0 || downIndex < m.rowCount()) {
		if upIndex >= 0 && aboveHeight < desiredAboveHeight {
			rendered, height, ok := m.renderRowAt(upIndex, cols, width)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		if downIndex < m.rowCount() {
			rendered, height, ok := m.renderRowAt(downIndex, cols, width)
			if ok && height <= heightFree {
				below = append(below, rendered)
				heightFree -= height
				downIndex++
				continue
			}
		}
		if upIndex >= 0 {
			rendered, height, ok := m.renderRowAt(upIndex, cols, width)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		break
	}

	renderedRows := make([]string, 0, len(above)+1+len(below))
	for i := len(above) - 1; i >= 0; i-- {
		renderedRows = append(renderedRows, above[i])
	}
	renderedRows = append(renderedRows, cursorRenderedRow)
	renderedRows = append(renderedRows, below...)

	return renderedRows, cursor - len(above), cursor + len(below)
}
