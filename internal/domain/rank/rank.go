// Package rank defines the closed, ordered achievement enumerations
// used by the merge policy: clear types and letter grades.
//
// Values carry the canonical database codes. The codes are assigned in
// strictly increasing achievement order, which lets the relational
// store merge them with GREATEST; in-process comparisons still go
// through the explicit rank tables below rather than the raw codes.
package rank

// ClearType describes how a play ended, ordered by achievement strength.
type ClearType int

// Canonical clear type codes.
const (
	ClearNoPlay               ClearType = 50
	ClearFailed               ClearType = 100
	ClearCleared              ClearType = 200
	ClearHard                 ClearType = 300
	ClearUltimateChain        ClearType = 400
	ClearPerfectUltimateChain ClearType = 500
)

// Grade is the score-based letter grade, ordered by achievement strength.
type Grade int

// Canonical grade codes.
const (
	GradeNoPlay  Grade = 100
	GradeD       Grade = 200
	GradeC       Grade = 300
	GradeB       Grade = 400
	GradeA       Grade = 500
	GradeAPlus   Grade = 550
	GradeAA      Grade = 600
	GradeAAPlus  Grade = 650
	GradeAAA     Grade = 700
	GradeAAAPlus Grade = 800
	GradeS       Grade = 900
)

// clearRanks maps each valid clear type to its ordinal strength.
var clearRanks = map[ClearType]int{
	ClearNoPlay:               0,
	ClearFailed:               1,
	ClearCleared:              2,
	ClearHard:                 3,
	ClearUltimateChain:        4,
	ClearPerfectUltimateChain: 5,
}

// gradeRanks maps each valid grade to its ordinal strength.
var gradeRanks = map[Grade]int{
	GradeNoPlay:  0,
	GradeD:       1,
	GradeC:       2,
	GradeB:       3,
	GradeA:       4,
	GradeAPlus:   5,
	GradeAA:      6,
	GradeAAPlus:  7,
	GradeAAA:     8,
	GradeAAAPlus: 9,
	GradeS:       10,
}

// Valid reports whether c belongs to the closed clear type set.
func (c ClearType) Valid() bool {
	_, ok := clearRanks[c]
	return ok
}

// Rank returns the ordinal strength of c. Invalid values rank below
// every valid one.
func (c ClearType) Rank() int {
	r, ok := clearRanks[c]
	if !ok {
		return -1
	}
	return r
}

func (c ClearType) String() string {
	switch c {
	case ClearNoPlay:
		return "no-play"
	case ClearFailed:
		return "failed"
	case ClearCleared:
		return "clear"
	case ClearHard:
		return "hard-clear"
	case ClearUltimateChain:
		return "ultimate-chain"
	case ClearPerfectUltimateChain:
		return "perfect-ultimate-chain"
	default:
		return "invalid"
	}
}

// Valid reports whether g belongs to the closed grade set.
func (g Grade) Valid() bool {
	_, ok := gradeRanks[g]
	return ok
}

// Rank returns the ordinal strength of g. Invalid values rank below
// every valid one.
func (g Grade) Rank() int {
	r, ok := gradeRanks[g]
	if !ok {
		return -1
	}
	return r
}

func (g Grade) String() string {
	switch g {
	case GradeNoPlay:
		return "no-play"
	case GradeD:
		return "D"
	case GradeC:
		return "C"
	case GradeB:
		return "B"
	case GradeA:
		return "A"
	case GradeAPlus:
		return "A+"
	case GradeAA:
		return "AA"
	case GradeAAPlus:
		return "AA+"
	case GradeAAA:
		return "AAA"
	case GradeAAAPlus:
		return "AAA+"
	case GradeS:
		return "S"
	default:
		return "invalid"
	}
}

// MaxClearType returns the stronger of a and b under rank ordering.
func MaxClearType(a, b ClearType) ClearType {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// MaxGrade returns the stronger of a and b under rank ordering.
func MaxGrade(a, b Grade) Grade {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
