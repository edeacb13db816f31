// Package source loads the COVID-19 CSV over HTTP or from disk and keeps the
// first successful load for the life of the process.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
)

const (
	DefaultURL     = "https://covid.ourworldindata.org/data/owid-covid-data.csv"
	DefaultTimeout = 2 * time.Minute
)

var (
	ErrFetch = errors.New("fetch failed")
	ErrParse = errors.New("parse failed")
)

// FetchError describes a failed load. Kind is ErrFetch or ErrParse.
type FetchError struct {
	Kind       error
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%v: %s: HTTP %d", e.Kind, e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Source, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

type Loader struct {
	URL     string
	File    string // takes precedence over URL when set
	Client  *http.Client
	Timeout time.Duration
}

// Describe names where the data comes from, for headers and logs.
func (l Loader) Describe() string {
	if l.File != "" {
		return l.File
	}
	if l.URL != "" {
		return l.URL
	}
	return DefaultURL
}

// Load reads and parses the dataset once, without caching.
func (l Loader) Load(ctx context.Context) (*dataset.Dataset, error) {
	start := time.Now()
	body, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	ds, err := dataset.ParseCSV(body)
	if err != nil {
		return nil, &FetchError{Kind: ErrParse, Source: l.Describe(), Err: err}
	}
	logging.Infof("source: loaded %d rows (%d skipped) from %s in %s",
		ds.Len(), ds.Skipped, l.Describe(), time.Since(start).Round(time.Millisecond))
	return ds, nil
}

func (l Loader) open(ctx context.Context) (io.ReadCloser, error) {
	if l.File != "" {
		f, err := os.Open(l.File)
		if err != nil {
			return nil, &FetchError{Kind: ErrFetch, Source: l.File, Err: err}
		}
		return f, nil
	}

	url := l.URL
	if url == "" {
		url = DefaultURL
	}
	client := l.Client
	if client == nil {
		timeout := l.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	logging.Debugf("source: GET %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrFetch, Source: url, Err: fmt.Errorf("creating http request: %w", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: ErrFetch, Source: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &FetchError{Kind: ErrFetch, Source: url, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
