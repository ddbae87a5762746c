package engine

import (
	"math/bits"

	"chess-search/position"
)

// Board indexing: dragontoothmg squares run a1=0..h8=63, tables are printed
// rank 8 first, so White's pieces look their square up through FlipView and
// Black's pieces use the square directly.
var FlipView = [64]int{
	56, 57, 58, 59, 60, 61, 62, 63,
	48, 49, 50, 51, 52, 53, 54, 55,
	40, 41, 42, 43, 44, 45, 46, 47,
	32, 33, 34, 35, 36, 37, 38, 39,
	24, 25, 26, 27, 28, 29, 30, 31,
	16, 17, 18, 19, 20, 21, 22, 23,
	8, 9, 10, 11, 12, 13, 14, 15,
	0, 1, 2, 3, 4, 5, 6, 7,
}

// Evaluator scores positions with a fixed set of weights.
type Evaluator struct {
	w Weights
}

// NewEvaluator copies w, so later changes to the caller's value never reach
// a running search.
func NewEvaluator(w *Weights) *Evaluator {
	return &Evaluator{w: *w}
}

// Weights returns a copy of the evaluator's configuration.
func (e *Evaluator) Weights() Weights { return e.w }

// Evaluate scores pos in White's frame. It never mutates pos.
func (e *Evaluator) Evaluate(pos *position.Position) int32 {
	white := pos.WhiteToMove()
	sign := sideSign(white)
	inCheck := pos.InCheck()
	ownMoves := len(pos.LegalMoves())

	// Mate is tested before draws so a mated side is never scored level.
	if ownMoves == 0 {
		if inCheck {
			return worst(white)
		}
		return DrawScore
	}
	if pos.IsClaimableDraw() {
		return DrawScore
	}

	score := e.material(pos)

	score += sign * int32(ownMoves-pos.OpponentMoveCount()) * e.w.MobilityBonus

	// Tactical credit goes to the side that just moved.
	if inCheck {
		score -= sign * e.w.CheckBonus
	}
	if pos.LastMoveCaptured() {
		score -= sign * e.w.CaptureBonus
	}

	return clampHeuristic(score)
}

// material sums piece values and piece-square bonuses, choosing the table set
// by queen presence.
func (e *Evaluator) material(pos *position.Position) int32 {
	tables := &e.w.Midgame
	if !pos.HasQueens() {
		tables = &e.w.Endgame
	}

	var score int32
	occ := pos.Occupied()
	for occ != 0 {
		sq := uint8(bits.TrailingZeros64(occ))
		occ &= occ - 1

		piece, white, _ := pos.PieceAt(sq)
		if white {
			score += e.w.PieceValues[piece] + tables[piece][FlipView[sq]]
		} else {
			score -= e.w.PieceValues[piece] + tables[piece][sq]
		}
	}
	return score
}

func clampHeuristic(s int32) int32 {
	return Clamp(s, MinEval+1, MaxEval-1)
}
