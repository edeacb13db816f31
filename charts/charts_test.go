package charts

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/andareed/siftly-covid/dataset"
)

func sample() *dataset.Dataset {
	return dataset.New([]dataset.Row{
		dataset.NewRow("Asia", "Japan", "2023-01-02", map[dataset.Metric]float64{
			dataset.NewCases: 10, dataset.TotalCases: 100,
			dataset.GDPPerCapita: 39000, dataset.LifeExpectancy: 84.6, dataset.Population: 125e6,
		}),
		dataset.NewRow("Asia", "India", "2023-01-01", map[dataset.Metric]float64{
			dataset.NewCases: 5, dataset.TotalCases: 50,
			dataset.GDPPerCapita: 6400, dataset.LifeExpectancy: 69.7, dataset.Population: 1.4e9,
		}),
		dataset.NewRow("Europe", "Germany", "2023-01-01", map[dataset.Metric]float64{
			dataset.NewCases: 7,
			dataset.GDPPerCapita: 45000, dataset.LifeExpectancy: 81.3, dataset.Population: 83e6,
		}),
		dataset.NewRow("Asia", "Japan", "2023-01-01", map[dataset.Metric]float64{
			dataset.NewCases: 1,
			dataset.GDPPerCapita: 38000, dataset.LifeExpectancy: 84.5, dataset.Population: 125e6,
		}),
		dataset.NewRow("Europe", "Germany", "2023-01-03", nil),
	})
}

func TestByID(t *testing.T) {
	for _, p := range Panels {
		got, ok := ByID(p.ID)
		if !ok || got.Title != p.Title {
			t.Errorf("ByID(%q) = %+v, %v", p.ID, got, ok)
		}
	}
	if _, ok := ByID("nope"); ok {
		t.Error("unknown id should not resolve")
	}
	if len(Panels) != 8 {
		t.Errorf("panels = %d, want 8", len(Panels))
	}
	for _, g := range TabGroups {
		if len(g.Panels) != 3 {
			t.Errorf("group %s has %d panels", g.Name, len(g.Panels))
		}
	}
}

func TestDailySums(t *testing.T) {
	d := DailySums(sample(), dataset.NewCases)
	if d.Len() != 2 {
		t.Fatalf("dates = %d, want 2 (2023-01-03 has no values)", d.Len())
	}
	if got := d.Dates[0].Format(dataset.DateLayout); got != "2023-01-01" {
		t.Errorf("first date = %s", got)
	}
	if d.Values[0][0] != 13 || d.Values[0][1] != 10 {
		t.Errorf("values = %v, want [13 10]", d.Values[0])
	}
	if d.Max() != 13 {
		t.Errorf("max = %v", d.Max())
	}
}

func TestDailySumsStacked(t *testing.T) {
	d := DailySums(sample(), dataset.NewCases, dataset.TotalCases)
	totals := d.Totals()
	want := []float64{13 + 50, 10 + 100}
	for i := range want {
		if totals[i] != want[i] {
			t.Errorf("totals[%d] = %v, want %v", i, totals[i], want[i])
		}
	}
}

func TestDailySumsNil(t *testing.T) {
	d := DailySums(nil, dataset.NewCases)
	if d.Len() != 0 || d.Max() != 0 {
		t.Errorf("nil dataset = %+v", d)
	}
}

func TestBubbles(t *testing.T) {
	pts := Bubbles(sample())
	if len(pts) != 3 {
		t.Fatalf("bubbles = %d, want 3", len(pts))
	}
	if pts[0].Location != "Germany" || pts[2].Location != "India" {
		t.Errorf("order = %v", pts)
	}
	for _, b := range pts {
		if b.Location == "Japan" && b.GDPPerCapita != 39000 {
			t.Errorf("Japan should use latest row, got gdp %v", b.GDPPerCapita)
		}
	}
}

func TestResample(t *testing.T) {
	if got := resample([]float64{1, 3, 5, 7}, 2); got[0] != 2 || got[1] != 6 {
		t.Errorf("downsample = %v", got)
	}
	if got := resample([]float64{1, 9}, 4); got[0] != 1 || got[1] != 1 || got[2] != 9 || got[3] != 9 {
		t.Errorf("upsample = %v", got)
	}
	if resample(nil, 4) != nil {
		t.Error("empty input")
	}
}

func TestCompact(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		950:     "950",
		12500:   "12.5k",
		3400000: "3.4M",
		1.2e9:   "1.2B",
	}
	for in, want := range tests {
		if got := Compact(in); got != want {
			t.Errorf("Compact(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatCount(1234567.4); got != "1,234,567" {
		t.Errorf("FormatCount = %q", got)
	}
}

func TestRenderDimensions(t *testing.T) {
	const w, h = 60, 14
	empty := dataset.New(nil)
	for _, ds := range []*dataset.Dataset{sample(), empty, nil} {
		for _, p := range Panels {
			out := Render(p, ds, w, h)
			lines := strings.Split(out, "\n")
			if len(lines) != h {
				t.Errorf("%s: %d lines, want %d", p.ID, len(lines), h)
			}
			for i, l := range lines {
				if lw := ansi.StringWidth(l); lw > w {
					t.Errorf("%s line %d width %d > %d", p.ID, i, lw, w)
				}
			}
		}
	}
}

func TestRenderEmptyShowsNoData(t *testing.T) {
	out := ansi.Strip(Render(NewCases, dataset.New(nil), 40, 8))
	if !strings.Contains(out, noData) {
		t.Errorf("empty render missing %q:\n%s", noData, out)
	}
	out = ansi.Strip(Render(GDPLife, nil, 40, 8))
	if !strings.Contains(out, noData) {
		t.Errorf("empty scatter missing %q", noData)
	}
}

func TestRenderTooSmall(t *testing.T) {
	out := Render(NewCases, sample(), 10, 3)
	if len(strings.Split(out, "\n")) != 3 {
		t.Errorf("small render = %q", out)
	}
}

func TestWritePNG(t *testing.T) {
	for _, ds := range []*dataset.Dataset{sample(), dataset.New(nil)} {
		for _, p := range Panels {
			var buf bytes.Buffer
			if err := WritePNG(&buf, p, ds, 320, 200); err != nil {
				t.Fatalf("%s: %v", p.ID, err)
			}
			cfg, err := png.DecodeConfig(&buf)
			if err != nil {
				t.Fatalf("%s: decode: %v", p.ID, err)
			}
			if cfg.Width != 320 || cfg.Height != 200 {
				t.Errorf("%s: size %dx%d", p.ID, cfg.Width, cfg.Height)
			}
		}
	}
}

func TestGradientEnds(t *testing.T) {
	if Gradient(-1) != Gradient(0) || Gradient(2) != Gradient(1) {
		t.Error("gradient should clamp")
	}
	if Gradient(0) == Gradient(1) {
		t.Error("gradient ends should differ")
	}
}
