package rank

import "fmt"

// Native codes reported by the game itself, distinct from the
// canonical database codes.
const (
	gameClearNoPlay               = 0
	gameClearFailed               = 1
	gameClearCleared              = 2
	gameClearHard                 = 3
	gameClearUltimateChain        = 4
	gameClearPerfectUltimateChain = 5
)

const (
	gameGradeNoPlay  = 0
	gameGradeD       = 1
	gameGradeC       = 2
	gameGradeB       = 3
	gameGradeA       = 4
	gameGradeAPlus   = 5
	gameGradeAA      = 6
	gameGradeAAPlus  = 7
	gameGradeAAA     = 8
	gameGradeAAAPlus = 9
	gameGradeS       = 10
)

// ClearTypeFromGame translates the game's native clear code into the
// canonical clear type. Codes outside the closed set are an error.
func ClearTypeFromGame(code int) (ClearType, error) {
	switch code {
	case gameClearNoPlay:
		return ClearNoPlay, nil
	case gameClearFailed:
		return ClearFailed, nil
	case gameClearCleared:
		return ClearCleared, nil
	case gameClearHard:
		return ClearHard, nil
	case gameClearUltimateChain:
		return ClearUltimateChain, nil
	case gameClearPerfectUltimateChain:
		return ClearPerfectUltimateChain, nil
	default:
		return 0, fmt.Errorf("unknown game clear type code %d", code)
	}
}

// GradeFromGame translates the game's native grade code into the
// canonical grade. Codes outside the closed set are an error.
func GradeFromGame(code int) (Grade, error) {
	switch code {
	case gameGradeNoPlay:
		return GradeNoPlay, nil
	case gameGradeD:
		return GradeD, nil
	case gameGradeC:
		return GradeC, nil
	case gameGradeB:
		return GradeB, nil
	case gameGradeA:
		return GradeA, nil
	case gameGradeAPlus:
		return GradeAPlus, nil
	case gameGradeAA:
		return GradeAA, nil
	case gameGradeAAPlus:
		return GradeAAPlus, nil
	case gameGradeAAA:
		return GradeAAA, nil
	case gameGradeAAAPlus:
		return GradeAAAPlus, nil
	case gameGradeS:
		return GradeS, nil
	default:
		return 0, fmt.Errorf("unknown game grade code %d", code)
	}
}
