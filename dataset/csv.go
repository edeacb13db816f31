package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrMissingColumn = errors.New("missing required column")

// ParseCSV reads an OWID style CSV. Rows without a continent are dropped,
// records with the wrong number of fields are skipped and counted.
func ParseCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("CSV has no header")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	idx := columnIndex(header)
	for _, name := range []string{"continent", "location", "date"} {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	metricIdx := make([]int, numMetrics)
	for m := Metric(0); m < numMetrics; m++ {
		metricIdx[m] = -1
		if i, ok := idx[m.Column()]; ok {
			metricIdx[m] = i
		}
	}

	ds := &Dataset{Header: header}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				ds.Skipped++
				continue
			}
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		continent := strings.TrimSpace(rec[idx["continent"]])
		if continent == "" {
			continue
		}

		row := Row{
			Continent: continent,
			Location:  strings.TrimSpace(rec[idx["location"]]),
			DateRaw:   strings.TrimSpace(rec[idx["date"]]),
			cols:      rec,
		}
		row.Date, row.HasDate = parseDate(row.DateRaw)
		for m, i := range metricIdx {
			if i < 0 {
				continue
			}
			row.metrics[m] = parseValue(rec[i])
		}
		row.id = row.computeID()
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// WriteCSV writes the dataset with its original header.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)

	header := DefaultHeader
	if d != nil && len(d.Header) > 0 {
		header = d.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if d != nil {
		for i, r := range d.Rows {
			if err := cw.Write(r.cols); err != nil {
				return fmt.Errorf("write row %d: %w", i, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(name)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func parseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}
	}
	return Value{V: f, Valid: true}
}

func formatValue(v Value) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}
