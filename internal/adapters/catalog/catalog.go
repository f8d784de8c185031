// Package catalog resolves chart references into internal music keys.
package catalog

import (
	"context"

	"github.com/okian/scoresync/internal/domain/model"
)

// Catalog maps a (game, version, song, chart) tuple to the music key
// used by the score store.
type Catalog interface {
	// ResolveChart returns the music key for ref.
	// Returns ErrUnknownChart when the catalog has no such chart.
	ResolveChart(ctx context.Context, ref model.ChartRef) (int64, error)
}
