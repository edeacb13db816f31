// Package charts turns a filtered dataset into the dashboard's panels, either
// as styled terminal text or as PNG images.
package charts

import "github.com/andareed/siftly-covid/dataset"

type Kind int

const (
	KindStacked Kind = iota
	KindBars
	KindScatter
)

func (k Kind) String() string {
	switch k {
	case KindStacked:
		return "stacked"
	case KindBars:
		return "bars"
	case KindScatter:
		return "scatter"
	default:
		return "unknown"
	}
}

type Panel struct {
	ID      string
	Title   string
	Tab     string // short label used in tab bars
	Kind    Kind
	Metrics []dataset.Metric
}

var (
	Overview = Panel{
		ID:    "overview",
		Title: "Cases, Deaths, Tests and Vaccinations",
		Tab:   "Overview",
		Kind:  KindStacked,
		Metrics: []dataset.Metric{
			dataset.TotalCases, dataset.TotalDeaths, dataset.TotalTests, dataset.TotalVaccinations,
		},
	}
	NewCases          = bars("new-cases", "Total Number of New Cases", "New Cases", dataset.NewCases)
	NewDeaths         = bars("new-deaths", "Total Number of New Deaths", "New Deaths", dataset.NewDeaths)
	NewVaccinations   = bars("new-vaccinations", "Total Number of New Vaccinations", "New Vaccinations", dataset.NewVaccinations)
	TotalCases        = bars("total-cases", "Total Number of Cases", "Total Cases", dataset.TotalCases)
	TotalDeaths       = bars("total-deaths", "Total Number of Deaths", "Total Deaths", dataset.TotalDeaths)
	TotalVaccinations = bars("total-vaccinations", "Total Number of Vaccinations", "Total Vaccinations", dataset.TotalVaccinations)
	GDPLife           = Panel{
		ID:      "gdp-life",
		Title:   "GDP per Capita vs Life Expectancy",
		Tab:     "GDP vs Life",
		Kind:    KindScatter,
		Metrics: []dataset.Metric{dataset.GDPPerCapita, dataset.LifeExpectancy, dataset.Population},
	}
)

func bars(id, title, tab string, m dataset.Metric) Panel {
	return Panel{ID: id, Title: title, Tab: tab, Kind: KindBars, Metrics: []dataset.Metric{m}}
}

// Panels lists every panel in dashboard order.
var Panels = []Panel{
	Overview,
	NewCases, NewDeaths, NewVaccinations,
	TotalCases, TotalDeaths, TotalVaccinations,
	GDPLife,
}

type TabGroup struct {
	Name   string
	Panels []Panel
}

var TabGroups = []TabGroup{
	{Name: "New", Panels: []Panel{NewCases, NewDeaths, NewVaccinations}},
	{Name: "Total", Panels: []Panel{TotalCases, TotalDeaths, TotalVaccinations}},
}

func ByID(id string) (Panel, bool) {
	for _, p := range Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}
