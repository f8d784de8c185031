package identity

import (
	"context"
	"fmt"
	"sync"
)

// MemoryResolver implements Resolver on in-memory maps, for tests and
// local runs against the in-memory store.
type MemoryResolver struct {
	mu       sync.RWMutex
	cabinets map[string]int64
	players  map[string]int64
}

// NewMemoryResolver creates an empty resolver.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		cabinets: make(map[string]int64),
		players:  make(map[string]int64),
	}
}

// AddCabinet registers a PCBID.
func (r *MemoryResolver) AddCabinet(pcbID string, locationID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cabinets[pcbID] = locationID
}

// AddPlayer registers a card.
func (r *MemoryResolver) AddPlayer(cardID string, playerID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[cardID] = playerID
}

func (r *MemoryResolver) ResolveCabinet(_ context.Context, pcbID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.cabinets[pcbID]
	if !ok {
		return 0, fmt.Errorf("%w: pcbid %q", ErrUnknownCabinet, pcbID)
	}
	return id, nil
}

func (r *MemoryResolver) ResolvePlayer(_ context.Context, cardID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.players[cardID]
	if !ok {
		return 0, fmt.Errorf("%w: card %q", ErrUnknownPlayer, cardID)
	}
	return id, nil
}
