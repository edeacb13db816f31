package main

import (
	"errors"
	"testing"

	"github.com/andareed/siftly-covid/dataset"
)

func TestExportQueryOverlaysChangedFlags(t *testing.T) {
	t.Cleanup(func() {
		exportContinents, exportCountries, exportWhere = nil, nil, ""
		exportDays = int(dataset.DefaultRange)
	})

	base := dataset.DefaultQuery()
	base.Countries = dataset.Subset("Japan")

	if err := exportCmd.ParseFlags([]string{"--continent", "Asia", "--days", "365", "--where", "new_cases > 10"}); err != nil {
		t.Fatal(err)
	}
	q, err := exportQuery(exportCmd, base)
	if err != nil {
		t.Fatal(err)
	}
	if !q.Continents.Equal(dataset.Subset("Asia")) {
		t.Errorf("continents = %s", q.Continents)
	}
	if !q.Countries.Equal(dataset.Subset("Japan")) {
		t.Errorf("countries should come from the config, got %s", q.Countries)
	}
	if q.Range != 365 {
		t.Errorf("range = %d", q.Range)
	}
	if q.Where.String() != "new_cases > 10" {
		t.Errorf("where = %q", q.Where.String())
	}

	if err := exportCmd.ParseFlags([]string{"--days", "30"}); err != nil {
		t.Fatal(err)
	}
	if _, err := exportQuery(exportCmd, base); !errors.Is(err, dataset.ErrInvalidRange) {
		t.Errorf("days=30: err = %v", err)
	}
}
