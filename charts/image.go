package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
)

const (
	DefaultImageWidth  = 1024
	DefaultImageHeight = 512
)

// WritePNG renders a panel as a PNG image. Panels with no data, or that the
// chart library refuses to draw, come out as a blank image of the same size.
func WritePNG(w io.Writer, p Panel, ds *dataset.Dataset, width, height int) error {
	if width <= 0 {
		width = DefaultImageWidth
	}
	if height <= 0 {
		height = DefaultImageHeight
	}

	var ch *chart.Chart
	switch p.Kind {
	case KindScatter:
		ch = scatterChart(p, Bubbles(ds))
	case KindStacked:
		ch = lineChart(p, DailySums(ds, p.Metrics...))
	default:
		ch = barChart(p, DailySums(ds, p.Metrics...))
	}
	if ch == nil {
		logging.Debugf("charts: %s has no data, writing blank image", p.ID)
		return png.Encode(w, blank(width, height))
	}
	ch.Width = width
	ch.Height = height

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		logging.Warnf("charts: render %s failed: %v; writing blank image", p.ID, err)
		return png.Encode(w, blank(width, height))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func barChart(p Panel, d Daily) *chart.Chart {
	if d.Len() == 0 {
		return nil
	}
	dates, values := padSingle(d.Dates, d.Values[0])
	peak := d.Max()
	barColor := toDrawing(gradientColor(0.5))
	ch := &chart.Chart{
		Title:      p.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat(dataset.DateLayout)},
		YAxis:      yAxis(peak),
		Series: []chart.Series{
			chart.HistogramSeries{
				Name:  p.Metrics[0].Label(),
				Style: chart.Style{StrokeColor: barColor, FillColor: barColor.WithAlpha(200)},
				InnerSeries: chart.TimeSeries{
					XValues: dates,
					YValues: values,
				},
			},
		},
	}
	return ch
}

// lineChart draws the multi-metric overview. The library's stacked bar chart
// normalises every bar to 100%, so the image uses one line per metric.
func lineChart(p Panel, d Daily) *chart.Chart {
	if d.Len() == 0 {
		return nil
	}
	palette := Palette(len(d.Metrics))
	series := make([]chart.Series, 0, len(d.Metrics))
	peak := 0.0
	for i, m := range d.Metrics {
		dates, values := padSingle(d.Dates, d.Values[i])
		for _, v := range values {
			peak = math.Max(peak, v)
		}
		series = append(series, chart.TimeSeries{
			Name:    m.Label(),
			XValues: dates,
			YValues: values,
			Style:   chart.Style{StrokeColor: toDrawing(palette[i]), StrokeWidth: 2},
		})
	}
	ch := &chart.Chart{
		Title:      p.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat(dataset.DateLayout)},
		YAxis:      yAxis(peak),
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}

func scatterChart(p Panel, pts []Bubble) *chart.Chart {
	if len(pts) == 0 {
		return nil
	}
	continents := continentOrder(pts)
	palette := Palette(len(continents))

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	maxPop := 0.0
	for _, b := range pts {
		x := math.Log10(b.GDPPerCapita)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, b.LifeExpectancy), math.Max(maxY, b.LifeExpectancy)
		maxPop = math.Max(maxPop, b.Population)
	}
	minX, maxX = math.Floor(minX*2)/2, math.Ceil(maxX*2)/2
	if maxX <= minX {
		maxX = minX + 0.5
	}
	minY, maxY = math.Floor(minY)-1, math.Ceil(maxY)+1

	series := make([]chart.Series, 0, len(continents))
	for i, cont := range continents {
		var xs, ys, pops []float64
		for _, b := range pts {
			if b.Continent != cont {
				continue
			}
			xs = append(xs, math.Log10(b.GDPPerCapita))
			ys = append(ys, b.LifeExpectancy)
			pops = append(pops, b.Population)
		}
		if len(xs) == 1 {
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
			pops = append(pops, pops[0])
		}
		st := pointStyle(toDrawing(palette[i]))
		st.DotWidthProvider = func(_, _ chart.Range, index int, _, _ float64) float64 {
			if index < 0 || index >= len(pops) || maxPop <= 0 {
				return 3
			}
			return 3 + 12*math.Sqrt(pops[index]/maxPop)
		}
		series = append(series, chart.ContinuousSeries{Name: cont, XValues: xs, YValues: ys, Style: st})
	}

	var ticks []chart.Tick
	for v := minX; v <= maxX+1e-9; v += 0.5 {
		ticks = append(ticks, chart.Tick{Value: v, Label: "$" + Compact(math.Pow(10, v))})
	}

	ch := &chart.Chart{
		Title:      p.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12}},
		XAxis: chart.XAxis{
			Name:  "GDP per capita (log)",
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Life expectancy",
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col.WithAlpha(190),
	}
}

func yAxis(peak float64) chart.YAxis {
	top := peak * 1.05
	if top <= 0 {
		top = 1
	}
	return chart.YAxis{
		Range: &chart.ContinuousRange{Min: 0, Max: top},
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return Compact(f)
			}
			return ""
		},
	}
}

// padSingle turns a single point into two a day apart so the x range is
// never zero.
func padSingle(dates []time.Time, values []float64) ([]time.Time, []float64) {
	if len(dates) != 1 {
		return dates, values
	}
	return []time.Time{dates[0], dates[0].AddDate(0, 0, 1)}, []float64{values[0], values[0]}
}

func toDrawing(c colorful.Color) drawing.Color {
	r, g, b := c.Clamped().RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	return img
}
