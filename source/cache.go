package source

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
)

// DatasetLoader is what a Cache memoizes. Loader satisfies it.
type DatasetLoader interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
	Describe() string
}

// Cache loads the dataset on first use and then serves the same immutable
// value until the process exits. Failed loads are not kept, so the next Get
// tries again. Safe for concurrent use; concurrent first calls share one load.
type Cache struct {
	loader DatasetLoader
	group  singleflight.Group

	mu sync.RWMutex
	ds *dataset.Dataset
}

func NewCache(loader DatasetLoader) *Cache {
	return &Cache{loader: loader}
}

// Get returns the cached dataset, loading it first if needed. The shared
// load is detached from any one caller: a caller whose ctx ends stops
// waiting and gets ctx.Err(), the others keep waiting for the result. The
// loader's own timeout bounds the load.
func (c *Cache) Get(ctx context.Context) (*dataset.Dataset, error) {
	if ds, ok := c.Cached(); ok {
		return ds, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan("dataset", func() (any, error) {
		if ds, ok := c.Cached(); ok {
			return ds, nil
		}
		ds, err := c.loader.Load(loadCtx)
		if err != nil {
			logging.Errorf("source: load from %s failed: %v", c.loader.Describe(), err)
			return nil, err
		}
		c.mu.Lock()
		c.ds = ds
		c.mu.Unlock()
		return ds, nil
	})

	select {
	case <-ctx.Done():
		logging.Debugf("source: caller gave up waiting: %v", ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			logging.Debug("source: joined in-flight load")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dataset.Dataset), nil
	}
}

// Cached returns the dataset if a load has already succeeded.
func (c *Cache) Cached() (*dataset.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ds, c.ds != nil
}

func (c *Cache) Describe() string { return c.loader.Describe() }
