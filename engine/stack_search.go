package engine

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"chess-search/position"
)

// frame is one ply of the explicit search stack.
type frame struct {
	moves      []dragontoothmg.Move
	cursor     int
	alpha      int32
	beta       int32
	best       int32
	maximizing bool
}

// StackSearch is minimax with alpha-beta pruning walked without recursion.
// All walk state lives in a per-ply arena, so a search can be parked after
// any Step and resumed later. While a search is running the machine owns
// the position: pushes it made are still on it.
type StackSearch struct {
	eval   *Evaluator
	frames []frame

	pos   *position.Position
	depth int
	base  int // pos.Ply() when the walk started
	ply   int

	running  bool
	finished bool
	result   int32
	nodes    uint64
	cutoffs  uint64
}

func NewStackSearch(eval *Evaluator) *StackSearch {
	return &StackSearch{eval: eval}
}

func (s *StackSearch) Nodes() uint64   { return s.nodes }
func (s *StackSearch) Cutoffs() uint64 { return s.cutoffs }

// Start sets up a walk of pos to depth plies inside [alpha, beta]. A walk
// still in progress is abandoned first.
func (s *StackSearch) Start(pos *position.Position, depth int, alpha, beta int32) {
	s.Abort()
	s.pos = pos
	s.depth = depth
	s.base = pos.Ply()
	s.ply = 0
	s.running = true
	s.finished = false
	s.nodes++

	if depth <= 0 {
		s.finish(s.eval.Evaluate(pos))
		return
	}
	moves := pos.OrderedMoves()
	if len(moves) == 0 {
		s.finish(s.eval.Evaluate(pos))
		return
	}

	if cap(s.frames) < depth+1 {
		s.frames = make([]frame, depth+1)
	}
	s.frames = s.frames[:depth+1]
	white := pos.WhiteToMove()
	s.frames[0] = frame{
		moves:      moves,
		alpha:      alpha,
		beta:       beta,
		best:       worst(white),
		maximizing: white,
	}
}

// Step performs one transition: descend into the next move of the current
// ply, or backtrack out of an exhausted ply. It reports whether the walk
// still has work left.
func (s *StackSearch) Step() bool {
	if !s.running {
		return false
	}
	f := &s.frames[s.ply]
	if f.cursor >= len(f.moves) {
		s.backtrack()
		return s.running
	}

	move := f.moves[f.cursor]
	f.cursor++
	s.pos.Push(move)
	s.nodes++

	child := s.ply + 1
	if child == s.depth {
		s.leaf()
		return true
	}
	moves := s.pos.OrderedMoves()
	if len(moves) == 0 {
		s.leaf()
		return true
	}

	white := s.pos.WhiteToMove()
	s.frames[child] = frame{
		moves:      moves,
		alpha:      f.alpha,
		beta:       f.beta,
		best:       worst(white),
		maximizing: white,
	}
	s.ply = child
	return true
}

// Run performs at most budget transitions and reports whether the walk has
// finished.
func (s *StackSearch) Run(budget int) bool {
	for i := 0; i < budget && s.Step(); i++ {
	}
	return s.finished
}

// Result returns the score of the last finished walk.
func (s *StackSearch) Result() (int32, bool) {
	return s.result, s.finished
}

// Abort abandons a running walk and takes its moves back off the position.
func (s *StackSearch) Abort() {
	if !s.running {
		return
	}
	for s.pos.Ply() > s.base {
		s.pos.Pop()
	}
	s.running = false
}

// Search runs a full walk and returns the same value as Recursive.Search.
func (s *StackSearch) Search(pos *position.Position, depth int, alpha, beta int32) int32 {
	s.Start(pos, depth, alpha, beta)
	for s.Step() {
	}
	return s.result
}

// SearchRoot is the root mode over a candidate table; each root move's
// subtree is a separate walk.
func (s *StackSearch) SearchRoot(pos *position.Position, depth int, table Candidates) (Candidates, error) {
	s.nodes++
	return searchRoot(pos, depth, table, s.Search)
}

// leaf scores the position just pushed and folds it into the current ply.
func (s *StackSearch) leaf() {
	score := s.eval.Evaluate(s.pos)
	s.pos.Pop()
	s.fold(s.ply, score)
}

// backtrack leaves the current, exhausted ply. If the position no longer
// lines up with the stack the walk is aborted before panicking.
func (s *StackSearch) backtrack() {
	if got := s.pos.Ply() - s.base; got != s.ply {
		err := fmt.Errorf("%w: position is %d plies deep, stack at ply %d", ErrInvariant, got, s.ply)
		s.Abort()
		panic(err)
	}
	score := s.frames[s.ply].best
	if s.ply == 0 {
		s.finish(score)
		return
	}
	s.pos.Pop()
	s.ply--
	s.fold(s.ply, score)
}

// fold merges a child's score into ply p. A cutoff exhausts the ply so its
// next event is a backtrack.
func (s *StackSearch) fold(p int, score int32) {
	f := &s.frames[p]
	if f.maximizing {
		f.best = Max(f.best, score)
		f.alpha = Max(f.alpha, score)
	} else {
		f.best = Min(f.best, score)
		f.beta = Min(f.beta, score)
	}
	if f.beta <= f.alpha {
		f.cursor = len(f.moves)
		s.cutoffs++
	}
}

func (s *StackSearch) finish(score int32) {
	s.result = score
	s.running = false
	s.finished = true
}
