package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/scoresync/internal/domain/model"
)

// MemoryCatalog implements Catalog on an in-memory map.
type MemoryCatalog struct {
	mu     sync.RWMutex
	charts map[model.ChartRef]int64
}

// NewMemoryCatalog creates an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{charts: make(map[model.ChartRef]int64)}
}

// AddChart registers a chart under the given music key.
func (c *MemoryCatalog) AddChart(ref model.ChartRef, key int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.charts[ref] = key
}

func (c *MemoryCatalog) ResolveChart(_ context.Context, ref model.ChartRef) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key, ok := c.charts[ref]
	if !ok {
		return 0, fmt.Errorf("%w: %s v%d song %d chart %d", ErrUnknownChart, ref.Game, ref.Version, ref.SongID, ref.Chart)
	}
	return key, nil
}
