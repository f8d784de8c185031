package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/scoresync/internal/domain/model"
)

const resolveChartSQL = `
SELECT id FROM music
WHERE game = $1 AND version = $2 AND song_id = $3 AND chart = $4`

// PostgresCatalog implements Catalog against the music table.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog creates a catalog backed by the given pool.
func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

// ResolveChart returns the music key for ref.
func (c *PostgresCatalog) ResolveChart(ctx context.Context, ref model.ChartRef) (int64, error) {
	var id int64
	err := c.pool.QueryRow(ctx, resolveChartSQL, ref.Game, ref.Version, ref.SongID, ref.Chart).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s v%d song %d chart %d", ErrUnknownChart, ref.Game, ref.Version, ref.SongID, ref.Chart)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve chart %s/%d/%d/%d: %w", ref.Game, ref.Version, ref.SongID, ref.Chart, err)
	}
	return id, nil
}
