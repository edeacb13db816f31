package dataset

type Metric int

const (
	TotalCases Metric = iota
	TotalDeaths
	TotalTests
	TotalVaccinations
	NewCases
	NewDeaths
	NewVaccinations
	Population
	GDPPerCapita
	LifeExpectancy

	numMetrics
)

var metricColumns = [numMetrics]string{
	TotalCases:        "total_cases",
	TotalDeaths:       "total_deaths",
	TotalTests:        "total_tests",
	TotalVaccinations: "total_vaccinations",
	NewCases:          "new_cases",
	NewDeaths:         "new_deaths",
	NewVaccinations:   "new_vaccinations",
	Population:        "population",
	GDPPerCapita:      "gdp_per_capita",
	LifeExpectancy:    "life_expectancy",
}

var metricLabels = [numMetrics]string{
	TotalCases:        "Total Cases",
	TotalDeaths:       "Total Deaths",
	TotalTests:        "Total Tests",
	TotalVaccinations: "Total Vaccinations",
	NewCases:          "New Cases",
	NewDeaths:         "New Deaths",
	NewVaccinations:   "New Vaccinations",
	Population:        "Population",
	GDPPerCapita:      "GDP per Capita",
	LifeExpectancy:    "Life Expectancy",
}

// Metrics returns every metric in column order.
func Metrics() []Metric {
	out := make([]Metric, 0, numMetrics)
	for m := Metric(0); m < numMetrics; m++ {
		out = append(out, m)
	}
	return out
}

// Column is the CSV header name for the metric.
func (m Metric) Column() string {
	if m < 0 || m >= numMetrics {
		return ""
	}
	return metricColumns[m]
}

func (m Metric) Label() string {
	if m < 0 || m >= numMetrics {
		return ""
	}
	return metricLabels[m]
}

func (m Metric) String() string { return m.Column() }

// MetricByColumn looks a metric up by its CSV header name.
func MetricByColumn(name string) (Metric, bool) {
	for m := Metric(0); m < numMetrics; m++ {
		if metricColumns[m] == name {
			return m, true
		}
	}
	return 0, false
}

// Value is a metric cell. Valid is false when the cell was blank or not a number.
type Value struct {
	V     float64
	Valid bool
}
