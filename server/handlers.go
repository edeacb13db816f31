package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/andareed/siftly-covid/charts"
	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

func (s *APIServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

type rangeOption struct {
	Days  int    `json:"days"`
	Label string `json:"label"`
}

func rangeOptions() []rangeOption {
	out := make([]rangeOption, len(dataset.Ranges))
	for i, r := range dataset.Ranges {
		out[i] = rangeOption{Days: r.Days(), Label: r.Label()}
	}
	return out
}

func (s *APIServer) options(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.load(w, r)
	if !ok {
		return
	}
	continents := dataset.ParseSelection(nonEmpty(r.URL.Query()["continent"]))
	writeJSON(w, http.StatusOK, map[string]any{
		"continents":   ds.Continents(),
		"countries":    ds.Locations(continents),
		"ranges":       rangeOptions(),
		"default_days": s.opts.DefaultRange.Days(),
	})
}

func (s *APIServer) dataCSV(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := s.filtered(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, filtered); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="covid-filtered.csv"`)
	w.Write(buf.Bytes())
}

func (s *APIServer) chartPNG(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["panel"]
	panel, found := charts.ByID(id)
	if !found {
		respondError(w, "unknown chart panel "+strconv.Quote(id), http.StatusNotFound)
		return
	}
	_, filtered, _, ok := s.filtered(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := charts.WritePNG(&buf, panel, filtered, s.opts.ImageWidth, s.opts.ImageHeight); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

type indexPage struct {
	Rows             int
	Range            dataset.DateRange
	Ranges           []dataset.DateRange
	Continents       dataset.Selection
	Countries        dataset.Selection
	ContinentOptions []string
	CountryOptions   []string
	Where            string
	QueryString      template.URL
	Panels           []charts.Panel
}

func (s *APIServer) index(w http.ResponseWriter, r *http.Request) {
	ds, filtered, q, ok := s.filtered(w, r)
	if !ok {
		return
	}

	page := indexPage{
		Rows:             filtered.Len(),
		Range:            q.Range,
		Ranges:           dataset.Ranges,
		Continents:       q.Continents,
		Countries:        q.Countries,
		ContinentOptions: ds.Continents(),
		CountryOptions:   ds.Locations(q.Continents),
		Where:            q.Where.String(),
		QueryString:      template.URL(encodeQuery(q)),
		Panels:           charts.Panels,
	}
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		logging.Errorf("server: rendering index: %v", err)
		respondError(w, "rendering page failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// load fetches the cached dataset, answering 502 when the upstream fetch
// fails.
func (s *APIServer) load(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool) {
	ds, err := s.src.Get(r.Context())
	if err != nil {
		respondError(w, err.Error(), http.StatusBadGateway)
		return nil, false
	}
	return ds, true
}

// filtered parses the request query and applies it, returning both the full
// and the filtered dataset.
func (s *APIServer) filtered(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, *dataset.Dataset, dataset.Query, bool) {
	q, err := parseQuery(r.URL.Query(), s.opts.DefaultRange)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return nil, nil, q, false
	}
	ds, ok := s.load(w, r)
	if !ok {
		return nil, nil, q, false
	}
	return ds, dataset.Apply(ds, q, s.opts.Now()), q, true
}

// encodeQuery turns a query back into URL parameters for chart and CSV links.
func encodeQuery(q dataset.Query) string {
	v := url.Values{}
	if !q.Continents.IsAll() {
		v["continent"] = selectionValues(q.Continents)
	}
	if !q.Countries.IsAll() {
		v["country"] = selectionValues(q.Countries)
	}
	v.Set("days", strconv.Itoa(q.Range.Days()))
	if q.Where != nil {
		v.Set("where", q.Where.String())
	}
	return v.Encode()
}

// selectionValues sends an empty subset as a name no row carries, since an
// absent list means All.
func selectionValues(s dataset.Selection) []string {
	if s.IsEmpty() {
		return []string{noneValue}
	}
	return s.Names()
}

const noneValue = "None"
