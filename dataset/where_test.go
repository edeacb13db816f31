package dataset

import (
	"errors"
	"testing"
)

func TestCompileWhere(t *testing.T) {
	if _, err := CompileWhere("   "); !errors.Is(err, ErrEmptyExpression) {
		t.Errorf("blank expression err = %v", err)
	}
	if _, err := CompileWhere("population >"); err == nil {
		t.Error("expected syntax error")
	}
	w, err := CompileWhere(` location == "Japan" `)
	if err != nil {
		t.Fatalf("CompileWhere: %v", err)
	}
	if w.String() != `location == "Japan"` {
		t.Errorf("String() = %q", w.String())
	}
}

func TestWhereMatch(t *testing.T) {
	japan := NewRow("Asia", "Japan", "2023-01-01", map[Metric]float64{NewCases: 12})
	blank := NewRow("Asia", "Japan", "2023-01-02", nil)

	tests := []struct {
		expr string
		row  Row
		want bool
	}{
		{`location == "Japan"`, japan, true},
		{`continent in ["Europe", "Africa"]`, japan, false},
		{`date >= "2023-01-01"`, japan, true},
		{`new_cases > 10`, japan, true},
		{`new_cases == nil`, blank, true},
	}
	for _, tt := range tests {
		w, err := CompileWhere(tt.expr)
		if err != nil {
			t.Fatalf("CompileWhere(%q): %v", tt.expr, err)
		}
		if got := w.Match(tt.row); got != tt.want {
			t.Errorf("%q on %s = %v, want %v", tt.expr, tt.row.DateRaw, got, tt.want)
		}
	}
}

func TestWhereNilMatchesEverything(t *testing.T) {
	var w *Where
	if !w.Match(NewRow("Asia", "Japan", "2023-01-01", nil)) {
		t.Error("nil Where should match")
	}
	if w.String() != "" {
		t.Error("nil Where accessors")
	}
}
