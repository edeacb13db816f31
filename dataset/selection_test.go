package dataset

import (
	"strings"
	"testing"
)

func TestSelectionVariants(t *testing.T) {
	all := All()
	if !all.IsAll() || !all.Contains("anything") || all.IsEmpty() {
		t.Errorf("All() = %+v", all)
	}

	var zero Selection
	if zero.IsAll() || !zero.IsEmpty() || zero.Contains("Asia") {
		t.Errorf("zero Selection should be the empty subset")
	}

	s := Subset("Asia", "Europe")
	if s.IsAll() || !s.Contains("Asia") || s.Contains("asia") || s.Contains("Africa") {
		t.Errorf("Subset membership wrong: %v", s.Names())
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in      []string
		wantAll bool
		want    string
	}{
		{nil, true, ""},
		{[]string{"All"}, true, ""},
		{[]string{"Asia", "all"}, true, ""},
		{[]string{"Asia", " Europe "}, false, "Asia,Europe"},
		{[]string{""}, false, ""},
	}
	for _, tt := range tests {
		got := ParseSelection(tt.in)
		if got.IsAll() != tt.wantAll {
			t.Errorf("ParseSelection(%q).IsAll() = %v", tt.in, got.IsAll())
			continue
		}
		if !tt.wantAll && strings.Join(got.Names(), ",") != tt.want {
			t.Errorf("ParseSelection(%q) = %v, want %s", tt.in, got.Names(), tt.want)
		}
	}
}

func TestSelectionToggle(t *testing.T) {
	s := All().Toggle("Asia")
	if s.IsAll() || strings.Join(s.Names(), ",") != "Asia" {
		t.Fatalf("toggle from All = %v", s.Names())
	}

	s = s.Toggle("Europe")
	if strings.Join(s.Names(), ",") != "Asia,Europe" {
		t.Fatalf("toggle add = %v", s.Names())
	}

	orig := s
	s = s.Toggle("Asia").Toggle("Europe")
	if !s.IsEmpty() {
		t.Fatalf("toggle everything off = %v", s.Names())
	}
	if strings.Join(orig.Names(), ",") != "Asia,Europe" {
		t.Fatalf("Toggle mutated its receiver: %v", orig.Names())
	}
}

func TestSelectionEqualAndString(t *testing.T) {
	if !Subset("a", "b").Equal(Subset("b", "a")) {
		t.Error("subsets with same names should be equal")
	}
	if All().Equal(Subset()) || Subset().Equal(All()) {
		t.Error("All and empty subset must differ")
	}

	tests := []struct {
		sel  Selection
		want string
	}{
		{All(), "All"},
		{Subset(), "None"},
		{Subset("Japan"), "Japan"},
		{Subset("Japan", "India", "Chile", "Peru"), "Chile, India +2"},
	}
	for _, tt := range tests {
		if got := tt.sel.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
