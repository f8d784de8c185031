// Package repository defines the score store contract and its
// relational and in-memory implementations.
package repository

import (
	"context"

	"github.com/okian/scoresync/internal/domain/model"
)

// WriteMode selects how WriteBest treats the high-score bookkeeping.
type WriteMode int

const (
	// WriteHighScore marks this play as the authoritative high-score
	// event: the cabinet and high-score timestamp move to this play.
	// Used when the submission met or beat the previous best.
	WriteHighScore WriteMode = iota

	// WriteAccumulate preserves the stored cabinet and high-score
	// timestamp, updating only the accumulated fields and the
	// last-updated timestamp.
	WriteAccumulate
)

// Store provides read/write access to best scores and play history.
//
// WriteBest must be an atomic, idempotent upsert keyed by
// (player, chart): concurrent merges for the same pair must not lose
// updates, and re-applying the same submission leaves the row
// unchanged. Implementations merge server-side (max points, strongest
// clear/grade, earliest first-seen, latest update) so a stale read
// cannot clobber a newer write.
type Store interface {
	// ReadBest returns the current best record for (player, chart).
	// Returns ErrNotFound when the player has never played the chart.
	ReadBest(ctx context.Context, playerID, chartKey int64) (model.BestScoreRecord, error)

	// WriteBest upserts the merged best record.
	WriteBest(ctx context.Context, playerID, chartKey int64, rec model.BestScoreRecord, mode WriteMode) error

	// AppendHistory appends one immutable history row. History is
	// best-effort auxiliary data; a failure here must never roll back
	// a best-score write already committed.
	AppendHistory(ctx context.Context, playerID, chartKey int64, entry model.HistoryEntry) error
}
