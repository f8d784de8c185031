// Package model contains domain records passed between layers.
package model

import (
	"time"

	"github.com/okian/scoresync/internal/domain/rank"
	"github.com/okian/scoresync/internal/domain/stats"
)

// ChartRef identifies one chart as the game reports it.
type ChartRef struct {
	Game    string // game series identifier, e.g. "sdvx"
	Version int    // game version
	SongID  int    // song id according to the game
	Chart   int    // chart index within the song
}

// ScoreSubmission is one play result as reported by a cabinet.
// Constructed once per upload item, immutable afterwards.
type ScoreSubmission struct {
	Chart            ChartRef
	Points           int
	ClearType        rank.ClearType
	Grade            rank.Grade
	Stats            stats.PlayStats
	PlayedAt         time.Time // when the play happened
	ReportedUpdateAt time.Time // client-reported last-update time, may lag or lead PlayedAt
}

// BestScoreRecord is the durable personal best for one (player, chart)
// pair. Points, clear type and grade never decrease across merges.
type BestScoreRecord struct {
	Points        int
	ClearType     rank.ClearType
	Grade         rank.Grade
	Stats         stats.PlayStats // snapshot from the play that set the high score
	FirstSeenAt   time.Time       // earliest played-at ever merged; never advances
	LastUpdatedAt time.Time       // latest reported update across all merges
	LocationID    int64           // cabinet that set the current high score
}

// HistoryEntry is one immutable audit row per processed submission.
// Points holds the pre-merge best, not the submission's points, so the
// log can reconstruct what the record was before each play.
type HistoryEntry struct {
	Points      int
	ClearType   rank.ClearType
	Grade       rank.Grade
	Stats       stats.PlayStats // verbatim from the submission
	IsNewRecord bool
	PlayedAt    time.Time
	LocationID  int64
	PlayerID    int64
}

// Batch is one cabinet upload: every play a card reported in a single
// session, synced together.
type Batch struct {
	CabinetRef  string // external cabinet identifier (PCBID)
	PlayerRef   string // external card identifier
	Submissions []ScoreSubmission
}

// Report summarizes the outcome of syncing one batch.
type Report struct {
	BatchID   string // correlation id, generated per sync
	Processed int
	Skipped   int
	Aborted   bool
	Reason    error // set when Aborted, nil otherwise
}
