package charts

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/andareed/siftly-covid/dataset"
)

const (
	minWidth  = 20
	minHeight = 5
	noData    = "No data"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0e0e0"))
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a7a7a"))
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0a0"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a7a7a")).Italic(true)

	lowColor, _  = colorful.Hex("#2c7bb6")
	highColor, _ = colorful.Hex("#d7191c")

	eighths = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
)

// Gradient returns the bar color for a value at fraction t of the maximum.
func Gradient(t float64) string {
	return gradientColor(t).Hex()
}

func gradientColor(t float64) colorful.Color {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return lowColor.BlendLuv(highColor, t).Clamped()
}

// Palette returns n distinct colors spaced evenly around the hue wheel.
func Palette(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		h := 360 * float64(i) / float64(max(n, 1))
		out[i] = colorful.Hcl(h+30, 0.55, 0.7).Clamped()
	}
	return out
}

// Render draws a panel as exactly height lines no wider than width. Empty
// input and tiny sizes produce a placeholder frame instead of a chart.
func Render(p Panel, ds *dataset.Dataset, width, height int) string {
	if width < minWidth || height < minHeight {
		return placeholder(p.Title, width, height)
	}
	switch p.Kind {
	case KindScatter:
		return renderScatter(p, Bubbles(ds), width, height)
	case KindStacked:
		return renderBars(p, DailySums(ds, p.Metrics...), width, height, true)
	default:
		return renderBars(p, DailySums(ds, p.Metrics...), width, height, false)
	}
}

func placeholder(title string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := make([]string, height)
	lines[0] = fit(titleStyle.Render(title), width)
	body := lipgloss.Place(width, max(height-1, 1), lipgloss.Center, lipgloss.Center, emptyStyle.Render(noData))
	for i, l := range strings.Split(body, "\n") {
		if i+1 < height {
			lines[i+1] = fit(l, width)
		}
	}
	if height == 1 {
		lines[0] = fit(emptyStyle.Render(noData), width)
	}
	return strings.Join(lines, "\n")
}

func renderBars(p Panel, d Daily, width, height int, stacked bool) string {
	peak := d.Max()
	if d.Len() == 0 {
		return placeholder(p.Title, width, height)
	}

	top := Compact(peak)
	gutter := runewidth.StringWidth(top) + 2
	cols := width - gutter
	rows := height - 3
	if cols < 1 || rows < 1 {
		return placeholder(p.Title, width, height)
	}

	scale := peak
	if scale <= 0 {
		scale = 1
	}

	var body []string
	if stacked {
		body = stackedBody(d, cols, rows, scale)
	} else {
		body = barBody(resample(d.Values[0], cols), rows, scale)
	}

	lines := make([]string, 0, height)
	lines = append(lines, fit(titleStyle.Render(p.Title), width))
	for i, b := range body {
		label := strings.Repeat(" ", gutter-2)
		switch i {
		case 0:
			label = padLeft(top, gutter-2)
		case len(body) - 1:
			label = padLeft("0", gutter-2)
		}
		lines = append(lines, axisStyle.Render(label+" ┤")+b)
	}

	first := d.Dates[0].Format(dataset.DateLayout)
	last := d.Dates[d.Len()-1].Format(dataset.DateLayout)
	lines = append(lines, axisStyle.Render(spread(strings.Repeat(" ", gutter)+first, last, width)))

	var legend string
	if stacked {
		legend = metricLegend(d.Metrics, width)
	} else {
		legend = legendStyle.Render(fit("peak "+FormatCount(peak)+" · "+FormatCount(float64(d.Len()))+" days", width))
	}
	lines = append(lines, legend)
	return strings.Join(lines, "\n")
}

func barBody(values []float64, rows int, scale float64) []string {
	styles := make([]lipgloss.Style, len(values))
	levels := make([]int, len(values))
	for c, v := range values {
		frac := v / scale
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(Gradient(frac)))
		levels[c] = int(math.Round(math.Max(frac, 0) * float64(rows*8)))
	}

	out := make([]string, rows)
	for r := 0; r < rows; r++ {
		base := (rows - 1 - r) * 8
		var sb strings.Builder
		for c := range values {
			fill := levels[c] - base
			switch {
			case fill <= 0:
				sb.WriteString(" ")
			case fill >= 8:
				sb.WriteString(styles[c].Render(eighths[8]))
			default:
				sb.WriteString(styles[c].Render(eighths[fill]))
			}
		}
		out[r] = sb.String()
	}
	return out
}

func stackedBody(d Daily, cols, rows int, scale float64) []string {
	segs := make([][]float64, len(d.Metrics))
	for i := range d.Metrics {
		segs[i] = resample(d.Values[i], cols)
	}
	palette := Palette(len(d.Metrics))
	styles := make([]lipgloss.Style, len(palette))
	for i, c := range palette {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}

	out := make([]string, rows)
	for r := 0; r < rows; r++ {
		// cell centre, measured in rows from the bottom
		y := float64(rows-1-r) + 0.5
		var sb strings.Builder
		for c := 0; c < cols; c++ {
			acc := 0.0
			idx := -1
			for i := range segs {
				acc += segs[i][c] / scale * float64(rows)
				if y < acc {
					idx = i
					break
				}
			}
			if idx < 0 {
				sb.WriteString(" ")
				continue
			}
			sb.WriteString(styles[idx].Render("█"))
		}
		out[r] = sb.String()
	}
	return out
}

func metricLegend(metrics []dataset.Metric, width int) string {
	palette := Palette(len(metrics))
	parts := make([]string, len(metrics))
	for i, m := range metrics {
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(palette[i].Hex())).Render("■")
		parts[i] = sw + " " + legendStyle.Render(m.Label())
	}
	return fit(strings.Join(parts, "  "), width)
}

func renderScatter(p Panel, pts []Bubble, width, height int) string {
	if len(pts) == 0 {
		return placeholder(p.Title, width, height)
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, b := range pts {
		x := math.Log10(b.GDPPerCapita)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, b.LifeExpectancy), math.Max(maxY, b.LifeExpectancy)
	}
	if maxX-minX < 1e-9 {
		minX, maxX = minX-0.5, maxX+0.5
	}
	if maxY-minY < 1e-9 {
		minY, maxY = minY-1, maxY+1
	}

	topLabel := trim(maxY)
	bottomLabel := trim(minY)
	gutter := max(runewidth.StringWidth(topLabel), runewidth.StringWidth(bottomLabel)) + 2
	cols := width - gutter
	rows := height - 3
	if cols < 1 || rows < 1 {
		return placeholder(p.Title, width, height)
	}

	continents := continentOrder(pts)
	palette := Palette(len(continents))
	colorOf := make(map[string]lipgloss.Style, len(continents))
	for i, c := range continents {
		colorOf[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(palette[i].Hex()))
	}

	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	for _, b := range pts {
		x := (math.Log10(b.GDPPerCapita) - minX) / (maxX - minX)
		y := (b.LifeExpectancy - minY) / (maxY - minY)
		c := clamp(int(math.Round(x*float64(cols-1))), 0, cols-1)
		r := clamp(rows-1-int(math.Round(y*float64(rows-1))), 0, rows-1)
		grid[r][c] = colorOf[b.Continent].Render(bubbleGlyph(b.Population))
	}

	lines := make([]string, 0, height)
	lines = append(lines, fit(titleStyle.Render(p.Title), width))
	for r := range grid {
		label := strings.Repeat(" ", gutter-2)
		switch r {
		case 0:
			label = padLeft(topLabel, gutter-2)
		case rows - 1:
			label = padLeft(bottomLabel, gutter-2)
		}
		lines = append(lines, axisStyle.Render(label+" ┤")+strings.Join(grid[r], ""))
	}
	left := strings.Repeat(" ", gutter) + "$" + Compact(math.Pow(10, minX))
	right := "$" + Compact(math.Pow(10, maxX)) + " (log)"
	lines = append(lines, axisStyle.Render(spread(left, right, width)))

	parts := make([]string, len(continents))
	for i, c := range continents {
		parts[i] = colorOf[c].Render("●") + " " + legendStyle.Render(c)
	}
	lines = append(lines, fit(strings.Join(parts, "  "), width))
	return strings.Join(lines, "\n")
}

func continentOrder(pts []Bubble) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range pts {
		if !seen[b.Continent] {
			seen[b.Continent] = true
			out = append(out, b.Continent)
		}
	}
	sort.Strings(out)
	return out
}

func bubbleGlyph(population float64) string {
	switch {
	case population >= 1e8:
		return "●"
	case population >= 1e7:
		return "•"
	default:
		return "·"
	}
}

// fit truncates styled text to width and pads it out so every line of a
// panel has the same visible width.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func spread(left, right string, width int) string {
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return fit(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func padLeft(s string, w int) string {
	if n := runewidth.StringWidth(s); n < w {
		return strings.Repeat(" ", w-n) + s
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
