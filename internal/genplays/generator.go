// Package genplays generates fake save-data exports in the vendor's
// wire shape, for exercising the sync pipeline without a cabinet.
package genplays

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"time"
)

// Generation ranges.
const (
	maxPoints     = 10_000_000
	randomDivisor = 1_000_000

	// Score tiers keep the output looking like a real profile instead
	// of uniform noise.
	caseFailedRun   = 0
	caseAverageRun  = 1
	caseGoodRun     = 2
	casePerfectRun  = 3
	scoreTierCount  = 4
	failedCeiling   = 7_000_000
	averageFloor    = 7_000_000
	averageRange    = 1_500_000
	goodFloor       = 8_500_000
	goodRange       = 1_400_000
	perfectFloor    = 9_900_000
	perfectRange    = 100_000
	chartsPerSong   = 3
	playHistoryDays = 30
)

// Config controls generation.
type Config struct {
	NumPlays int
	NumSongs int
}

// document mirrors the vendor export shape.
type document struct {
	MID        int     `json:"mid"`
	Type       int     `json:"type"`
	Score      int     `json:"score"`
	Clear      int     `json:"clear"`
	Grade      int     `json:"grade"`
	ButtonRate float64 `json:"buttonRate"`
	LongRate   float64 `json:"longRate"`
	VolRate    float64 `json:"volRate"`
	CreatedAt  msDate  `json:"createdAt"`
	UpdatedAt  msDate  `json:"updatedAt"`
}

type msDate struct {
	Date int64 `json:"$date"`
}

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randRate returns a random accuracy rate in [0, 200).
func randRate() float64 {
	return float64(randInt(randomDivisor)) / float64(randomDivisor) * 200
}

// generatePlay builds one fake play document.
func generatePlay(numSongs int) document {
	score := 0
	switch randInt(scoreTierCount) {
	case caseFailedRun:
		score = randInt(failedCeiling)
	case caseAverageRun:
		score = averageFloor + randInt(averageRange)
	case caseGoodRun:
		score = goodFloor + randInt(goodRange)
	case casePerfectRun:
		score = perfectFloor + randInt(perfectRange)
	}
	if score > maxPoints {
		score = maxPoints
	}

	// Native clear code loosely tracks the score tier.
	clear := 1
	switch {
	case score >= perfectFloor:
		clear = 5
	case score >= goodFloor:
		clear = 3
	case score >= averageFloor:
		clear = 2
	}

	grade := score / (maxPoints / 10)
	if grade > 10 {
		grade = 10
	}

	playedAt := time.Now().Add(-time.Duration(randInt(playHistoryDays*24)) * time.Hour)
	return document{
		MID:        1 + randInt(numSongs),
		Type:       randInt(chartsPerSong),
		Score:      score,
		Clear:      clear,
		Grade:      grade,
		ButtonRate: randRate(),
		LongRate:   randRate(),
		VolRate:    randRate(),
		CreatedAt:  msDate{Date: playedAt.UnixMilli()},
		UpdatedAt:  msDate{Date: playedAt.Add(time.Minute).UnixMilli()},
	}
}

// Write generates cfg.NumPlays documents as newline-delimited JSON.
func Write(w io.Writer, cfg Config) error {
	if cfg.NumPlays <= 0 {
		return fmt.Errorf("num plays must be positive, got %d", cfg.NumPlays)
	}
	if cfg.NumSongs <= 0 {
		cfg.NumSongs = 100
	}

	enc := json.NewEncoder(w)
	for i := 0; i < cfg.NumPlays; i++ {
		if err := enc.Encode(generatePlay(cfg.NumSongs)); err != nil {
			return fmt.Errorf("encode play %d: %w", i, err)
		}
	}
	return nil
}
