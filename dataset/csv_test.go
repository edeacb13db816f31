package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `iso_code,continent,location,date,total_cases,new_cases,total_deaths,population,gdp_per_capita,life_expectancy
JPN,Asia,Japan,2023-01-01,100,5,1,125000000,39002.2,84.6
DEU,Europe,Germany,2020-01-01,50,,2,83000000,45229.2,81.3
OWID_WRL,,World,2023-01-01,1000,10,20,,,
FRA,Europe,France,not-a-date,7,1,0,67000000,38605.6,82.7
BAD,Europe,Broken
`

func TestParseCSV(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	if got, want := ds.Len(), 3; got != want {
		t.Fatalf("rows = %d, want %d", got, want)
	}
	if ds.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", ds.Skipped)
	}
	for _, r := range ds.Rows {
		if r.Continent == "" {
			t.Errorf("row %q has empty continent", r.Location)
		}
	}

	japan := ds.Rows[0]
	if v, ok := japan.Metric(TotalCases); !ok || v != 100 {
		t.Errorf("Japan total_cases = %v,%v want 100,true", v, ok)
	}
	if !japan.HasDate || japan.Date.Format(DateLayout) != "2023-01-01" {
		t.Errorf("Japan date = %v (has=%v)", japan.Date, japan.HasDate)
	}
	// total_tests is not a column in the sample
	if _, ok := japan.Metric(TotalTests); ok {
		t.Errorf("Japan total_tests should be absent")
	}

	germany := ds.Rows[1]
	if _, ok := germany.Metric(NewCases); ok {
		t.Errorf("blank new_cases should be absent, not zero")
	}

	france := ds.Rows[2]
	if france.HasDate {
		t.Errorf("France date %q should not parse", france.DateRaw)
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("location,date\nJapan,2023-01-01\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestParseCSVEmpty(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseCSVStripsBOM(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader("\ufeffcontinent,location,date\nAsia,Japan,2023-01-01\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("rows = %d, want 1", ds.Len())
	}
}

func TestWriteCSVKeepsHeaderAndCells(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + 3 rows\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "iso_code,continent,location") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "JPN,Asia,Japan,2023-01-01,100,5,1,125000000,39002.2,84.6" {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestWriteCSVNilDataset(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "continent,location,date,total_cases") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestOptions(t *testing.T) {
	ds := New([]Row{
		NewRow("Europe", "Germany", "2023-01-01", nil),
		NewRow("Asia", "Japan", "2023-01-01", nil),
		NewRow("Asia", "India", "2023-01-02", nil),
		NewRow("Asia", "Japan", "2023-01-03", nil),
	})

	if got := strings.Join(ds.Continents(), ","); got != "Asia,Europe" {
		t.Errorf("Continents = %q", got)
	}
	if got := strings.Join(ds.Locations(All()), ","); got != "Germany,India,Japan" {
		t.Errorf("Locations(All) = %q", got)
	}
	if got := strings.Join(ds.Locations(Subset("Asia")), ","); got != "India,Japan" {
		t.Errorf("Locations(Asia) = %q", got)
	}
	if got := ds.Locations(Subset()); len(got) != 0 {
		t.Errorf("Locations(empty) = %v", got)
	}

	min, max, ok := ds.DateBounds()
	if !ok || min.Format(DateLayout) != "2023-01-01" || max.Format(DateLayout) != "2023-01-03" {
		t.Errorf("DateBounds = %v %v %v", min, max, ok)
	}
}
