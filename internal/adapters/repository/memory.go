package repository

import (
	"context"
	"sync"

	"github.com/okian/scoresync/internal/domain/model"
	"github.com/okian/scoresync/internal/domain/rank"
)

type pairKey struct {
	playerID int64
	chartKey int64
}

// MemoryStore implements Store in memory. It mirrors the merging
// semantics of the relational upsert so tests and local runs observe
// the same behavior as production.
type MemoryStore struct {
	mu      sync.RWMutex
	best    map[pairKey]model.BestScoreRecord
	history []model.HistoryEntry

	historyErr error // injected by tests to exercise the best-effort path
}

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithHistoryError makes every AppendHistory call fail with err.
func WithHistoryError(err error) MemoryOption {
	return func(s *MemoryStore) {
		s.historyErr = err
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		best: make(map[pairKey]model.BestScoreRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadBest returns the current best record for (player, chart).
func (s *MemoryStore) ReadBest(_ context.Context, playerID, chartKey int64) (model.BestScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.best[pairKey{playerID, chartKey}]
	if !ok {
		return model.BestScoreRecord{}, ErrNotFound
	}
	return rec, nil
}

// WriteBest upserts the record, folding it into any stored row the
// same way the relational store does.
func (s *MemoryStore) WriteBest(_ context.Context, playerID, chartKey int64, rec model.BestScoreRecord, mode WriteMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{playerID, chartKey}
	cur, ok := s.best[key]
	if !ok {
		s.best[key] = rec
		return nil
	}

	merged := cur
	merged.Points = max(cur.Points, rec.Points)
	merged.ClearType = rank.MaxClearType(cur.ClearType, rec.ClearType)
	merged.Grade = rank.MaxGrade(cur.Grade, rec.Grade)
	if rec.Points > cur.Points {
		merged.Stats = rec.Stats
	}
	if rec.LastUpdatedAt.After(cur.LastUpdatedAt) {
		merged.LastUpdatedAt = rec.LastUpdatedAt
	}
	if mode == WriteHighScore {
		if rec.FirstSeenAt.Before(cur.FirstSeenAt) {
			merged.FirstSeenAt = rec.FirstSeenAt
		}
		if rec.Points >= cur.Points {
			merged.LocationID = rec.LocationID
		}
	}
	s.best[key] = merged
	return nil
}

// AppendHistory appends one history row.
func (s *MemoryStore) AppendHistory(_ context.Context, _, _ int64, entry model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.historyErr != nil {
		return s.historyErr
	}
	s.history = append(s.history, entry)
	return nil
}

// History returns a copy of all appended history rows, in order.
func (s *MemoryStore) History() []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Count returns the number of best-score rows held.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.best)
}
