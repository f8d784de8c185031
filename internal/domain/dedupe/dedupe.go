// Package dedupe tracks plays that were already synced, so a cabinet
// re-uploading the same save does not append duplicate history rows.
package dedupe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/scoresync/internal/domain/model"
)

// Deduper records seen play keys to ensure at-most-once processing.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records
	// it if not. Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key, allowing the play to be retried. Used
	// when a play was recorded but its store write failed.
	Unrecord(ctx context.Context, key string)

	// Size returns the number of keys currently tracked.
	Size() int64
}

// PlayKey builds the idempotency key for one play: the card, the chart
// and the play timestamp together identify a submission.
func PlayKey(playerRef string, chart model.ChartRef, playedAt time.Time) string {
	return fmt.Sprintf("%s/%s/%d/%d/%d@%d",
		playerRef, chart.Game, chart.Version, chart.SongID, chart.Chart, playedAt.Unix())
}

// inMemoryDeduper is a bounded set with oldest-first eviction. Keys are
// held in a ring buffer; when full, the oldest key is dropped to make
// room. With maxSize <= 0 the set is unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string // insertion order, oldest at tail index
	head    int      // next write position in ring
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 50000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}

	if d.maxSize > 0 {
		// Full ring: the slot about to be overwritten holds the oldest
		// live key, evict it first.
		if old := d.ring[d.head]; old != "" {
			delete(d.seen, old)
		}
		d.ring[d.head] = key
		d.head = (d.head + 1) % d.maxSize
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; !ok {
		return
	}
	delete(d.seen, key)
	if d.maxSize > 0 {
		// Leave the ring slot in place; it is skipped at eviction time
		// since the key is no longer in the map.
		for i, k := range d.ring {
			if k == key {
				d.ring[i] = ""
				break
			}
		}
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
