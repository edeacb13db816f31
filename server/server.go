// Package server exposes the dashboard over HTTP: filter options, the
// filtered CSV, one PNG per chart panel and a small HTML page tying them
// together.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
)

// DatasetSource is satisfied by *source.Cache.
type DatasetSource interface {
	Get(ctx context.Context) (*dataset.Dataset, error)
	Describe() string
}

type Options struct {
	Addr         string
	ImageWidth   int
	ImageHeight  int
	DefaultRange dataset.DateRange
	Now          func() time.Time
}

type APIServer struct {
	src  DatasetSource
	opts Options
}

func NewAPIServer(src DatasetSource, opts Options) *APIServer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultRange == 0 {
		opts.DefaultRange = dataset.DefaultRange
	}
	return &APIServer{src: src, opts: opts}
}

func (s *APIServer) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", s.index).Methods(http.MethodGet)
	router.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/options", s.options).Methods(http.MethodGet)
	api.HandleFunc("/data.csv", s.dataCSV).Methods(http.MethodGet)

	router.HandleFunc("/charts/{panel}.png", s.chartPNG).Methods(http.MethodGet)

	chain := MiddlewareChain(
		RequestIDMiddleware,
		RequestLoggerMiddleware,
	)
	return chain(router)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *APIServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("Server has started %s (source %s)", s.opts.Addr, s.src.Describe())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Infof("Server shutting down")
		return server.Shutdown(shutdownCtx)
	}
}
