package engine

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dylhunn/dragontoothmg"
	"github.com/samber/lo"

	"chess-search/position"
)

// Candidate is one root move and the score the last search gave it.
type Candidate struct {
	Move  dragontoothmg.Move
	Score int32
}

// Candidates is the ranked root move table carried between deepening passes.
type Candidates []Candidate

// NewCandidates seeds a table with every legal move at the side to move's
// worst sentinel.
func NewCandidates(pos *position.Position) Candidates {
	moves := pos.LegalMoves()
	floor := worst(pos.WhiteToMove())
	table := make(Candidates, len(moves))
	for i, m := range moves {
		table[i] = Candidate{Move: m, Score: floor}
	}
	return table
}

// Validate checks that the table names exactly the legal moves of pos.
func (c Candidates) Validate(pos *position.Position) error {
	legal := pos.LegalMoves()
	if len(legal) != len(c) {
		return fmt.Errorf("%w: %d candidates, %d legal moves", ErrCandidateMismatch, len(c), len(legal))
	}
	seen := make(map[dragontoothmg.Move]struct{}, len(c))
	for _, cand := range c {
		seen[cand.Move] = struct{}{}
	}
	if len(seen) != len(c) {
		return fmt.Errorf("%w: duplicate candidates", ErrCandidateMismatch)
	}
	for _, m := range legal {
		if _, ok := seen[m]; !ok {
			return fmt.Errorf("%w: legal move %s missing", ErrCandidateMismatch, position.MoveString(m))
		}
	}
	return nil
}

// Sort orders the table best first for the side to move. Equal scores keep
// their previous relative order.
func (c Candidates) Sort(whiteToMove bool) {
	slices.SortStableFunc(c, func(a, b Candidate) int {
		if whiteToMove {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Score, b.Score)
	})
}

// Best returns the best score in the table for the side to move.
func (c Candidates) Best(whiteToMove bool) int32 {
	best := worst(whiteToMove)
	for _, cand := range c {
		if whiteToMove {
			best = Max(best, cand.Score)
		} else {
			best = Min(best, cand.Score)
		}
	}
	return best
}

// Ties returns the candidates scoring exactly score.
func (c Candidates) Ties(score int32) Candidates {
	return lo.Filter(c, func(cand Candidate, _ int) bool {
		return cand.Score == score
	})
}

func (c Candidates) String() string {
	return fmt.Sprint(lo.Map(c, func(cand Candidate, _ int) string {
		return position.MoveString(cand.Move) + " " + ScoreString(cand.Score)
	}))
}

// childSearch scores the position reached by a root move.
type childSearch func(pos *position.Position, depth int, alpha, beta int32) int32

// searchRoot runs one root-mode pass over table. Moves are searched in table
// order with the root bound shared between them; once beta <= alpha the rest
// keep the score they came in with. Each child sees the root bound widened by
// one so a move equal to the best so far comes back exact rather than as a
// cut-off bound.
func searchRoot(pos *position.Position, depth int, table Candidates, child childSearch) (Candidates, error) {
	if err := table.Validate(pos); err != nil {
		return nil, err
	}
	white := pos.WhiteToMove()
	out := slices.Clone(table)

	alpha, beta := MinEval, MaxEval
	for i := range out {
		a, b := alpha, beta
		if white && a > MinEval {
			a--
		}
		if !white && b < MaxEval {
			b++
		}

		pos.Push(out[i].Move)
		score := child(pos, depth-1, a, b)
		pos.Pop()

		out[i].Score = score
		if white {
			alpha = Max(alpha, score)
		} else {
			beta = Min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}

	out.Sort(white)
	return out, nil
}
