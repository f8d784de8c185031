// Package identity resolves external cabinet and card identifiers into
// internal keys. These are point lookups with no merge semantics.
package identity

import "context"

// Resolver maps a cabinet's PCBID and a player's card to internal ids.
type Resolver interface {
	// ResolveCabinet returns the location id for a PCBID.
	// Returns ErrUnknownCabinet when no machine matches.
	ResolveCabinet(ctx context.Context, pcbID string) (int64, error)

	// ResolvePlayer returns the player id bound to a card.
	// Returns ErrUnknownPlayer when no card matches.
	ResolvePlayer(ctx context.Context, cardID string) (int64, error)
}
