package dataset

import (
	"testing"
	"time"
)

var today = time.Date(2023, 6, 1, 15, 30, 0, 0, time.UTC)

func fixture() *Dataset {
	return New([]Row{
		NewRow("Asia", "Japan", "2023-01-01", map[Metric]float64{TotalCases: 100}),
		NewRow("Europe", "Germany", "2020-01-01", map[Metric]float64{TotalCases: 50}),
		NewRow("Europe", "Germany", "2023-05-30", map[Metric]float64{TotalCases: 60, Population: 83e6}),
		NewRow("Europe", "France", "2023-05-25", map[Metric]float64{TotalCases: 70, Population: 67e6}),
		NewRow("Asia", "India", "2023-03-01", map[Metric]float64{TotalCases: 80, Population: 1.4e9}),
		NewRow("Asia", "India", "garbage", map[Metric]float64{TotalCases: 81}),
		NewRow("Africa", "Kenya", "2023-05-31", nil),
		NewRow("Africa", "Kenya", "", nil),
		NewRow("", "World", "2023-05-31", map[Metric]float64{TotalCases: 1000}),
	})
}

func locations(ds *Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, r := range ds.Rows {
		out = append(out, r.Location+"@"+r.DateRaw)
	}
	return out
}

func sameRows(a, b *Dataset) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Rows {
		if a.Rows[i].ID() != b.Rows[i].ID() {
			return false
		}
	}
	return true
}

func TestApplyScenarioAsiaPastYear(t *testing.T) {
	ds := New([]Row{
		NewRow("Asia", "Japan", "2023-01-01", map[Metric]float64{TotalCases: 100}),
		NewRow("Europe", "Germany", "2020-01-01", map[Metric]float64{TotalCases: 50}),
	})
	q := Query{Continents: Subset("Asia"), Countries: All(), Range: 365}

	got := Apply(ds, q, today)
	if got.Len() != 1 || got.Rows[0].Location != "Japan" {
		t.Fatalf("got %v, want only Japan", locations(got))
	}
}

func TestApplyNonexistentCountryIsEmpty(t *testing.T) {
	q := Query{Continents: All(), Countries: Subset("Nonexistent"), Range: DefaultRange}
	got := Apply(fixture(), q, today)
	if got.Len() != 0 {
		t.Fatalf("got %v, want empty", locations(got))
	}
	if len(got.Header) == 0 {
		t.Errorf("empty result should keep the header")
	}
}

func TestApplyAllKeepsOnlyDatedRowsInWindow(t *testing.T) {
	for _, r := range Ranges {
		got := Apply(fixture(), Query{Continents: All(), Countries: All(), Range: r}, today)
		cutoff := r.Cutoff(today)
		for _, row := range got.Rows {
			if row.Continent == "" {
				t.Errorf("range %d: row %s has empty continent", r, row.Location)
			}
			if !row.HasDate {
				t.Errorf("range %d: row %s has no date", r, row.Location)
			}
			if row.Date.Before(cutoff) {
				t.Errorf("range %d: row %s@%s before cutoff %s", r, row.Location, row.DateRaw, cutoff.Format(DateLayout))
			}
		}
	}
}

func TestApplyCutoffIsInclusive(t *testing.T) {
	ds := New([]Row{
		NewRow("Asia", "Japan", "2023-05-24", nil),
		NewRow("Asia", "Japan", "2023-05-23", nil),
	})
	got := Apply(ds, Query{Continents: All(), Countries: All(), Range: 8}, today)
	if got.Len() != 1 || got.Rows[0].DateRaw != "2023-05-24" {
		t.Fatalf("got %v, want only 2023-05-24", locations(got))
	}
}

func TestApplyContinentMembership(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want map[string]bool
	}{
		{"asia", Subset("Asia"), map[string]bool{"Asia": true}},
		{"europe and africa", Subset("Europe", "Africa"), map[string]bool{"Europe": true, "Africa": true}},
		{"empty", Subset(), map[string]bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixture(), Query{Continents: tt.sel, Countries: All(), Range: 1825}, today)
			for _, row := range got.Rows {
				if !tt.want[row.Continent] {
					t.Errorf("row %s has continent %q", row.Location, row.Continent)
				}
			}
			if len(tt.want) == 0 && got.Len() != 0 {
				t.Errorf("empty selection returned %d rows", got.Len())
			}
		})
	}
}

func TestApplyCountryAndContinentCombine(t *testing.T) {
	q := Query{Continents: Subset("Europe"), Countries: Subset("Germany", "Japan"), Range: 91}
	got := Apply(fixture(), q, today)
	if got.Len() != 1 || got.Rows[0].Location != "Germany" || got.Rows[0].DateRaw != "2023-05-30" {
		t.Fatalf("got %v", locations(got))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	queries := []Query{
		DefaultQuery(),
		{Continents: Subset("Asia"), Countries: All(), Range: 365},
		{Continents: All(), Countries: Subset("Germany", "Kenya"), Range: 1825},
		{Continents: Subset(), Countries: All(), Range: 8},
	}
	for _, q := range queries {
		once := Apply(fixture(), q, today)
		twice := Apply(once, q, today)
		if !sameRows(once, twice) {
			t.Errorf("query %+v: once %v, twice %v", q, locations(once), locations(twice))
		}
	}
}

func TestApplyIsMonotonicInRange(t *testing.T) {
	ds := fixture()
	for i := 0; i < len(Ranges); i++ {
		for j := 0; j < len(Ranges); j++ {
			short, long := Ranges[i], Ranges[j]
			if short >= long {
				continue
			}
			small := Apply(ds, Query{Continents: All(), Countries: All(), Range: short}, today)
			big := Apply(ds, Query{Continents: All(), Countries: All(), Range: long}, today)
			ids := make(map[uint64]bool, big.Len())
			for _, r := range big.Rows {
				ids[r.ID()] = true
			}
			for _, r := range small.Rows {
				if !ids[r.ID()] {
					t.Errorf("%d-day row %s@%s missing from %d-day result", short, r.Location, r.DateRaw, long)
				}
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	ds := fixture()
	before := ds.Len()
	first := ds.Rows[0].ID()

	Apply(ds, Query{Continents: Subset("Africa"), Countries: All(), Range: 8}, today)

	if ds.Len() != before || ds.Rows[0].ID() != first {
		t.Fatalf("input dataset changed")
	}
}

func TestApplyNilDataset(t *testing.T) {
	got := Apply(nil, DefaultQuery(), today)
	if got == nil || got.Len() != 0 {
		t.Fatalf("Apply(nil) = %+v", got)
	}
}

func TestApplyWhere(t *testing.T) {
	w, err := CompileWhere("population != nil && population > 7e7")
	if err != nil {
		t.Fatalf("CompileWhere: %v", err)
	}
	q := Query{Continents: All(), Countries: All(), Range: 365, Where: w}
	got := Apply(fixture(), q, today)

	want := map[string]bool{"Germany": true, "India": true}
	if got.Len() != 2 {
		t.Fatalf("got %v", locations(got))
	}
	for _, r := range got.Rows {
		if !want[r.Location] {
			t.Errorf("unexpected row %s", r.Location)
		}
	}
}

func TestApplyCountsWhereErrorsPerCall(t *testing.T) {
	w, err := CompileWhere("population > 7e7")
	if err != nil {
		t.Fatalf("CompileWhere: %v", err)
	}
	q := Query{Continents: All(), Countries: All(), Range: 365, Where: w}

	// Japan and Kenya have no population inside the window
	for i := 0; i < 2; i++ {
		got := Apply(fixture(), q, today)
		if got.Len() != 2 {
			t.Fatalf("run %d: got %v", i, locations(got))
		}
		if got.WhereErrors != 2 {
			t.Errorf("run %d: WhereErrors = %d, want 2", i, got.WhereErrors)
		}
	}

	q.Where = nil
	if got := Apply(fixture(), q, today); got.WhereErrors != 0 {
		t.Errorf("no expression: WhereErrors = %d", got.WhereErrors)
	}
}
