// Package stats holds the per-play accuracy snapshot and its storable
// encoding.
//
// The stored form is a small versioned JSON envelope with named fields.
// The vendor occasionally attaches an opaque byte blob to a play; it is
// carried verbatim through encode/decode as a base64 string so the
// round trip is exact.
package stats

import (
	"encoding/json"
	"fmt"
)

// codecVersion tags the envelope so the on-disk format can evolve.
const codecVersion = 1

// PlayStats is the accuracy snapshot for a single play.
type PlayStats struct {
	BtnRate  float64 `json:"btn_rate"`
	LongRate float64 `json:"long_rate"`
	VolRate  float64 `json:"vol_rate"`
	Critical int     `json:"critical"`
	Near     int     `json:"near"`
	Error    int     `json:"error"`
	// Extra is an opaque vendor blob carried verbatim, if present.
	Extra []byte `json:"extra,omitempty"`
}

// envelope is the stored representation of PlayStats.
type envelope struct {
	V     int       `json:"v"`
	Stats PlayStats `json:"stats"`
}

// Encode serializes s into its storable form.
func Encode(s PlayStats) ([]byte, error) {
	b, err := json.Marshal(envelope{V: codecVersion, Stats: s})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return b, nil
}

// Decode parses a stored blob back into a PlayStats. A nil or empty
// blob decodes to the zero snapshot, matching rows written before any
// stats existed.
func Decode(b []byte) (PlayStats, error) {
	if len(b) == 0 {
		return PlayStats{}, nil
	}
	var e envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return PlayStats{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if e.V != codecVersion {
		return PlayStats{}, fmt.Errorf("%w: unsupported version %d", ErrDecode, e.V)
	}
	return e.Stats, nil
}
