package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/scoresync/internal/domain/model"
	"github.com/okian/scoresync/internal/domain/rank"
	"github.com/okian/scoresync/internal/domain/stats"
	"github.com/okian/scoresync/pkg/metrics"
)

const readBestSQL = `
SELECT points, clear_type, grade, stats, first_played_at, last_updated_at, location_id
FROM scores
WHERE player_id = $1 AND music_id = $2`

// The upsert merges server-side so two concurrent merges for the same
// (player, chart) pair cannot lose an update: GREATEST/LEAST fold the
// incoming row into whatever is stored at commit time, and the stats
// snapshot only moves on a strict points improvement. Canonical
// clear/grade codes increase with achievement strength, which is what
// makes GREATEST valid on them.
const writeBestHighScoreSQL = `
INSERT INTO scores (player_id, music_id, points, clear_type, grade, stats, first_played_at, last_updated_at, location_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (player_id, music_id) DO UPDATE SET
    points          = GREATEST(scores.points, EXCLUDED.points),
    clear_type      = GREATEST(scores.clear_type, EXCLUDED.clear_type),
    grade           = GREATEST(scores.grade, EXCLUDED.grade),
    stats           = CASE WHEN EXCLUDED.points > scores.points THEN EXCLUDED.stats ELSE scores.stats END,
    first_played_at = LEAST(scores.first_played_at, EXCLUDED.first_played_at),
    last_updated_at = GREATEST(scores.last_updated_at, EXCLUDED.last_updated_at),
    location_id     = CASE WHEN EXCLUDED.points >= scores.points THEN EXCLUDED.location_id ELSE scores.location_id END`

// The accumulate variant never touches the cabinet or the first-played
// timestamp of the stored high score.
const writeBestAccumulateSQL = `
INSERT INTO scores (player_id, music_id, points, clear_type, grade, stats, first_played_at, last_updated_at, location_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (player_id, music_id) DO UPDATE SET
    points          = GREATEST(scores.points, EXCLUDED.points),
    clear_type      = GREATEST(scores.clear_type, EXCLUDED.clear_type),
    grade           = GREATEST(scores.grade, EXCLUDED.grade),
    stats           = CASE WHEN EXCLUDED.points > scores.points THEN EXCLUDED.stats ELSE scores.stats END,
    last_updated_at = GREATEST(scores.last_updated_at, EXCLUDED.last_updated_at)`

const appendHistorySQL = `
INSERT INTO score_history (player_id, music_id, played_at, location_id, is_new_record, points, clear_type, grade, stats)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ReadBest returns the current best record for (player, chart).
func (s *PostgresStore) ReadBest(ctx context.Context, playerID, chartKey int64) (model.BestScoreRecord, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency("read_best", float64(time.Since(start).Milliseconds()))
	}()

	var (
		rec       model.BestScoreRecord
		clearType int
		grade     int
		blob      []byte
	)
	err := s.pool.QueryRow(ctx, readBestSQL, playerID, chartKey).Scan(
		&rec.Points, &clearType, &grade, &blob,
		&rec.FirstSeenAt, &rec.LastUpdatedAt, &rec.LocationID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.BestScoreRecord{}, ErrNotFound
	}
	if err != nil {
		return model.BestScoreRecord{}, fmt.Errorf("read best (player=%d music=%d): %w", playerID, chartKey, err)
	}

	rec.ClearType = rank.ClearType(clearType)
	rec.Grade = rank.Grade(grade)
	rec.Stats, err = stats.Decode(blob)
	if err != nil {
		return model.BestScoreRecord{}, fmt.Errorf("read best (player=%d music=%d): %w", playerID, chartKey, err)
	}
	return rec, nil
}

// WriteBest upserts the merged best record in one atomic statement.
func (s *PostgresStore) WriteBest(ctx context.Context, playerID, chartKey int64, rec model.BestScoreRecord, mode WriteMode) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency("write_best", float64(time.Since(start).Milliseconds()))
	}()

	blob, err := stats.Encode(rec.Stats)
	if err != nil {
		return fmt.Errorf("write best (player=%d music=%d): %w", playerID, chartKey, err)
	}

	sql := writeBestHighScoreSQL
	if mode == WriteAccumulate {
		sql = writeBestAccumulateSQL
	}
	_, err = s.pool.Exec(ctx, sql,
		playerID, chartKey, rec.Points, int(rec.ClearType), int(rec.Grade), blob,
		rec.FirstSeenAt, rec.LastUpdatedAt, rec.LocationID,
	)
	if err != nil {
		return fmt.Errorf("write best (player=%d music=%d): %w", playerID, chartKey, err)
	}
	return nil
}

// AppendHistory appends one history row.
func (s *PostgresStore) AppendHistory(ctx context.Context, playerID, chartKey int64, entry model.HistoryEntry) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency("append_history", float64(time.Since(start).Milliseconds()))
	}()

	blob, err := stats.Encode(entry.Stats)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHistoryAppend, err)
	}
	_, err = s.pool.Exec(ctx, appendHistorySQL,
		playerID, chartKey, entry.PlayedAt, entry.LocationID, entry.IsNewRecord,
		entry.Points, int(entry.ClearType), int(entry.Grade), blob,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHistoryAppend, err)
	}
	return nil
}
