package engine

import "fmt"

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
// Scores are in White's frame: White maximizes, Black minimizes. The sentinels
// mark a proven forced result and sit outside every heuristic score.
const (
	MaxEval   int32 = 100000000
	MinEval   int32 = -100000000
	DrawScore int32 = 0

	// ScoreUnit is the internal value of one pawn.
	ScoreUnit = 1000
)

// worst is the sentinel the side to move least wants to see.
func worst(whiteToMove bool) int32 {
	if whiteToMove {
		return MinEval
	}
	return MaxEval
}

// sideSign is +1 when White is to move and -1 otherwise.
func sideSign(whiteToMove bool) int32 {
	if whiteToMove {
		return 1
	}
	return -1
}

// IsMateScore reports whether s is one of the forced-result sentinels.
func IsMateScore(s int32) bool { return s == MaxEval || s == MinEval }

// ScoreString renders a score for display, in pawns.
func ScoreString(s int32) string {
	switch s {
	case MaxEval:
		return "mate(white)"
	case MinEval:
		return "mate(black)"
	}
	return fmt.Sprintf("%.3f", float64(s)/ScoreUnit)
}
