package position

import "github.com/dylhunn/dragontoothmg"

const fiftyMoveLimit = 100

// state is what we need per ply to undo a move and to reason about draws.
type state struct {
	hash     uint64
	rule50   int
	captured bool
	undo     func()
}

// Push applies a legal move. The move is trusted: callers only push moves
// taken from this position's own move lists or from ParseMove.
func (p *Position) Push(m dragontoothmg.Move) {
	captured := p.IsCapture(m)
	piece, _, _ := p.PieceAt(m.From())
	rule50 := p.history[len(p.history)-1].rule50 + 1
	if captured || piece == dragontoothmg.Pawn {
		rule50 = 0
	}
	undo := p.board.Apply(m)
	p.history = append(p.history, state{
		hash:     p.board.Hash(),
		rule50:   rule50,
		captured: captured,
		undo:     undo,
	})
}

// Pop undoes the most recent Push. Popping more than was pushed is a bug in
// the caller and panics.
func (p *Position) Pop() {
	if len(p.history) <= 1 {
		panic(ErrUnbalancedPop)
	}
	last := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	last.undo()
}

// LastMoveCaptured reports whether the move that produced this position was
// a capture. False at the construction point.
func (p *Position) LastMoveCaptured() bool {
	return p.history[len(p.history)-1].captured
}

// IsClaimableDraw reports a fifty-move draw or a threefold repetition.
func (p *Position) IsClaimableDraw() bool {
	curr := p.history[len(p.history)-1]
	if curr.rule50 >= fiftyMoveLimit {
		return true
	}
	return p.repetitions() >= 2
}

// repetitions counts earlier occurrences of the current position inside the
// reversible window.
func (p *Position) repetitions() int {
	top := len(p.history) - 1
	curr := p.history[top]
	start := top - curr.rule50
	if start < 0 {
		start = 0
	}
	count := 0
	for i := top - 2; i >= start; i -= 2 {
		if p.history[i].hash == curr.hash {
			count++
		}
	}
	return count
}

// RandomWalk plays up to plies random legal moves, choosing with pick(n)
// which must return a value in [0, n). It stops early at a terminal
// position and returns the number of moves played.
func (p *Position) RandomWalk(plies int, pick func(n int) int) int {
	played := 0
	for ; played < plies; played++ {
		moves := p.board.GenerateLegalMoves()
		if len(moves) == 0 {
			break
		}
		p.Push(moves[pick(len(moves))])
	}
	return played
}
