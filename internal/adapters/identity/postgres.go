package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	resolveCabinetSQL = `SELECT id FROM machines WHERE pcb_id = $1`
	resolvePlayerSQL  = `SELECT player_id FROM cards WHERE card_id = $1`
)

// PostgresResolver implements Resolver against the identity tables.
type PostgresResolver struct {
	pool *pgxpool.Pool
}

// NewPostgresResolver creates a resolver backed by the given pool.
func NewPostgresResolver(pool *pgxpool.Pool) *PostgresResolver {
	return &PostgresResolver{pool: pool}
}

// ResolveCabinet returns the location id for a PCBID.
func (r *PostgresResolver) ResolveCabinet(ctx context.Context, pcbID string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, resolveCabinetSQL, pcbID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: pcbid %q", ErrUnknownCabinet, pcbID)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve cabinet %q: %w", pcbID, err)
	}
	return id, nil
}

// ResolvePlayer returns the player id bound to a card.
func (r *PostgresResolver) ResolvePlayer(ctx context.Context, cardID string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, resolvePlayerSQL, cardID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: card %q", ErrUnknownPlayer, cardID)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve player %q: %w", cardID, err)
	}
	return id, nil
}
