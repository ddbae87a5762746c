package engine

import (
	"chess-search/position"
)

// Searcher is a minimax alpha-beta engine the driver can deepen with.
type Searcher interface {
	// Search scores pos looking depth plies ahead inside [alpha, beta].
	Search(pos *position.Position, depth int, alpha, beta int32) int32
	// SearchRoot scores every candidate of table at depth plies and
	// returns the re-ranked table.
	SearchRoot(pos *position.Position, depth int, table Candidates) (Candidates, error)
	// Nodes is the number of positions visited since the searcher was built.
	Nodes() uint64
	// Cutoffs is the number of alpha-beta cutoffs taken below the root.
	Cutoffs() uint64
}

// Recursive is the plain recursive minimax engine with alpha-beta pruning.
type Recursive struct {
	eval    *Evaluator
	nodes   uint64
	cutoffs uint64
}

func NewRecursive(eval *Evaluator) *Recursive {
	return &Recursive{eval: eval}
}

func (s *Recursive) Nodes() uint64   { return s.nodes }
func (s *Recursive) Cutoffs() uint64 { return s.cutoffs }

// Search returns the minimax value of pos. White maximizes, Black minimizes.
// The result is fail-soft: outside (alpha, beta) it is a bound.
func (s *Recursive) Search(pos *position.Position, depth int, alpha, beta int32) int32 {
	s.nodes++
	if depth <= 0 {
		return s.eval.Evaluate(pos)
	}
	moves := pos.OrderedMoves()
	if len(moves) == 0 {
		return s.eval.Evaluate(pos)
	}

	white := pos.WhiteToMove()
	best := worst(white)
	for _, move := range moves {
		pos.Push(move)
		score := s.Search(pos, depth-1, alpha, beta)
		pos.Pop()

		if white {
			best = Max(best, score)
			alpha = Max(alpha, score)
		} else {
			best = Min(best, score)
			beta = Min(beta, score)
		}
		if beta <= alpha {
			s.cutoffs++
			break
		}
	}
	return best
}

// SearchRoot is the root mode of Search over a candidate table.
func (s *Recursive) SearchRoot(pos *position.Position, depth int, table Candidates) (Candidates, error) {
	s.nodes++
	return searchRoot(pos, depth, table, s.Search)
}
