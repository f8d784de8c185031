// Package merge implements the best-score merge policy. It is pure
// decision logic: given the stored best (if any) and a new submission
// it computes the updated best record and the history row to append,
// with no I/O of its own.
package merge

import (
	"fmt"
	"time"

	"github.com/okian/scoresync/internal/domain/model"
	"github.com/okian/scoresync/internal/domain/rank"
)

// Result carries the outcome of merging one submission.
type Result struct {
	Best    model.BestScoreRecord
	History model.HistoryEntry

	// Raised is true when the submission strictly beat the previous
	// best. Only a raised score replaces the stats snapshot.
	Raised bool

	// HighScore is true when the submission met or beat the previous
	// best. It selects the store write mode: a tying play still counts
	// as a high-score write even though it did not raise the record.
	HighScore bool
}

// Merge folds one submission into the existing best record. A nil
// existing means this is the first play ever for the (player, chart)
// pair. Submissions whose clear type or grade fall outside their
// closed enumerations are rejected whole; nothing is merged.
func Merge(existing *model.BestScoreRecord, sub model.ScoreSubmission) (Result, error) {
	if !sub.ClearType.Valid() {
		return Result{}, fmt.Errorf("%w: clear type %d", ErrInvalidSubmission, int(sub.ClearType))
	}
	if !sub.Grade.Valid() {
		return Result{}, fmt.Errorf("%w: grade %d", ErrInvalidSubmission, int(sub.Grade))
	}

	if existing == nil {
		return Result{
			Best: model.BestScoreRecord{
				Points:        sub.Points,
				ClearType:     sub.ClearType,
				Grade:         sub.Grade,
				Stats:         sub.Stats,
				FirstSeenAt:   sub.PlayedAt,
				LastUpdatedAt: sub.ReportedUpdateAt,
			},
			History: model.HistoryEntry{
				Points:      0, // no prior best existed
				ClearType:   sub.ClearType,
				Grade:       sub.Grade,
				Stats:       sub.Stats,
				IsNewRecord: true,
				PlayedAt:    sub.PlayedAt,
			},
			Raised:    true,
			HighScore: true,
		}, nil
	}

	raised := sub.Points > existing.Points
	highScore := sub.Points >= existing.Points

	best := model.BestScoreRecord{
		Points:        max(existing.Points, sub.Points),
		ClearType:     rank.MaxClearType(existing.ClearType, sub.ClearType),
		Grade:         rank.MaxGrade(existing.Grade, sub.Grade),
		Stats:         existing.Stats,
		FirstSeenAt:   minTime(existing.FirstSeenAt, sub.PlayedAt),
		LastUpdatedAt: maxTime(existing.LastUpdatedAt, sub.ReportedUpdateAt),
		LocationID:    existing.LocationID,
	}
	// The stats snapshot follows the high score: only a strict
	// improvement replaces it, a tie keeps the previous snapshot.
	if raised {
		best.Stats = sub.Stats
	}

	history := model.HistoryEntry{
		Points:      existing.Points, // pre-merge best, captured before mutation
		ClearType:   sub.ClearType,
		Grade:       sub.Grade,
		Stats:       sub.Stats,
		IsNewRecord: raised,
		PlayedAt:    sub.PlayedAt,
	}

	return Result{
		Best:      best,
		History:   history,
		Raised:    raised,
		HighScore: highScore,
	}, nil
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
