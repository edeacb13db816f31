package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andareed/siftly-covid/dataset"
)

const csvBody = "continent,location,date,total_cases\nAsia,Japan,2023-01-01,100\n,World,2023-01-01,1000\nEurope,Germany,2020-01-01,50\n"

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csvBody))
	}))
	defer server.Close()

	ds, err := Loader{URL: server.URL}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d, want 2 (World has no continent)", ds.Len())
	}
}

func TestLoaderHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := Loader{URL: server.URL}.Load(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("err = %#v, want FetchError with status 503", err)
	}
}

func TestLoaderParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("foo,bar\n1,2\n"))
	}))
	defer server.Close()

	_, err := Loader{URL: server.URL}.Load(context.Background())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	if !errors.Is(err, dataset.ErrMissingColumn) {
		t.Fatalf("err = %v, should wrap ErrMissingColumn", err)
	}
}

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owid.csv")
	if err := os.WriteFile(path, []byte(csvBody), 0o600); err != nil {
		t.Fatal(err)
	}

	l := Loader{File: path, URL: "http://127.0.0.1:1/unused"}
	if l.Describe() != path {
		t.Errorf("Describe = %q", l.Describe())
	}
	ds, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d", ds.Len())
	}

	_, err = Loader{File: filepath.Join(t.TempDir(), "missing.csv")}.Load(context.Background())
	if !errors.Is(err, ErrFetch) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
}

func TestLoaderDefaultURL(t *testing.T) {
	if got := (Loader{}).Describe(); got != DefaultURL {
		t.Errorf("Describe = %q", got)
	}
}

// blockingLoader holds Load until release is closed or ctx ends.
type blockingLoader struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func newBlockingLoader() *blockingLoader {
	return &blockingLoader{started: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
	}
	select {
	case <-b.release:
		return dataset.New([]dataset.Row{dataset.NewRow("Asia", "Japan", "2023-01-01", nil)}), nil
	case <-ctx.Done():
		return nil, &FetchError{Kind: ErrFetch, Source: "test", Err: ctx.Err()}
	}
}

func (b *blockingLoader) Describe() string { return "test" }

type countingLoader struct {
	calls atomic.Int32
	fail  atomic.Bool
	delay time.Duration
}

func (c *countingLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.fail.Load() {
		return nil, &FetchError{Kind: ErrFetch, Source: "test", Err: errors.New("boom")}
	}
	return dataset.New([]dataset.Row{dataset.NewRow("Asia", "Japan", "2023-01-01", nil)}), nil
}

func (c *countingLoader) Describe() string { return "test" }

func TestCacheLoadsOnce(t *testing.T) {
	l := &countingLoader{}
	c := NewCache(l)

	if _, ok := c.Cached(); ok {
		t.Fatal("cache should start empty")
	}
	first, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first != second {
		t.Error("Get should return the same dataset")
	}
	if n := l.calls.Load(); n != 1 {
		t.Errorf("loader calls = %d, want 1", n)
	}
}

func TestCacheConcurrentFirstCallsShareLoad(t *testing.T) {
	l := &countingLoader{delay: 50 * time.Millisecond}
	c := NewCache(l)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Get(context.Background()); err != nil {
				t.Errorf("Get: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := l.calls.Load(); n != 1 {
		t.Errorf("loader calls = %d, want 1", n)
	}
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	l := &countingLoader{}
	l.fail.Store(true)
	c := NewCache(l)

	if _, err := c.Get(context.Background()); !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
	if _, ok := c.Cached(); ok {
		t.Fatal("failure must not be cached")
	}

	l.fail.Store(false)
	ds, err := c.Get(context.Background())
	if err != nil || ds.Len() != 1 {
		t.Fatalf("retry Get = %v, %v", ds, err)
	}
	if n := l.calls.Load(); n != 2 {
		t.Errorf("loader calls = %d, want 2", n)
	}
}

func TestCacheCancelledCallerDoesNotFailOthers(t *testing.T) {
	l := newBlockingLoader()
	c := NewCache(l)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Get(ctxA)
		errA <- err
	}()
	<-l.started

	type result struct {
		ds  *dataset.Dataset
		err error
	}
	resB := make(chan result, 1)
	go func() {
		ds, err := c.Get(context.Background())
		resB <- result{ds, err}
	}()

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller err = %v, want context.Canceled", err)
	}

	close(l.release)
	got := <-resB
	if got.err != nil {
		t.Fatalf("waiting caller err = %v", got.err)
	}
	if got.ds.Len() != 1 {
		t.Errorf("rows = %d, want 1", got.ds.Len())
	}
	if n := l.calls.Load(); n != 1 {
		t.Errorf("loader calls = %d, want 1", n)
	}
	if _, ok := c.Cached(); !ok {
		t.Error("dataset should be cached after the shared load")
	}
}
