package engine

import (
	"errors"
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"chess-search/position"
)

// Intner picks a uniform value in [0, n).
type Intner interface {
	Intn(n int) int
}

// Stats describes the last ChooseMove call.
type Stats struct {
	Depth   int    // deepest completed pass
	Nodes   uint64 // positions visited across all passes
	Cutoffs uint64 // alpha-beta cutoffs across all passes
}

// Driver deepens a Searcher one ply at a time, carrying each pass's ranked
// root moves into the next, and picks the final move.
type Driver struct {
	Searcher Searcher
	Rand     Intner
	Logger   zerolog.Logger

	Stats Stats
}

// NewDriver returns a driver over s using frand for tie-breaks and the
// global zerolog logger.
func NewDriver(s Searcher) *Driver {
	return &Driver{
		Searcher: s,
		Rand:     frand.New(),
		Logger:   log.Logger,
	}
}

// ChooseMove picks a move for the side to move with the recursive engine and
// default weights.
func ChooseMove(pos *position.Position, maxDepth int) (dragontoothmg.Move, int32, error) {
	return NewDriver(NewRecursive(NewEvaluator(&DefaultWeights))).ChooseMove(pos, maxDepth)
}

// ChooseMove searches pos at depths 1..maxDepth and returns the chosen move
// with its score. It stops early once a forced mate is proven either way.
// Moves sharing the best score are picked between uniformly at random. pos
// is left exactly as it was given; applying the move is up to the caller.
func (d *Driver) ChooseMove(pos *position.Position, maxDepth int) (move dragontoothmg.Move, score int32, err error) {
	if maxDepth < 1 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	table := NewCandidates(pos)
	if len(table) == 0 {
		return 0, 0, ErrNoLegalMoves
	}

	defer recoverInvariant(&err)

	white := pos.WhiteToMove()
	startPly, startHash := pos.Ply(), pos.Hash()
	startNodes, startCutoffs := d.Searcher.Nodes(), d.Searcher.Cutoffs()
	logger := d.Logger.With().Str("search", uuid.NewString()).Logger()
	d.Stats = Stats{}

	for depth := 1; depth <= maxDepth; depth++ {
		table, err = d.Searcher.SearchRoot(pos, depth, table)
		if err != nil {
			return 0, 0, fmt.Errorf("depth %d: %w", depth, err)
		}
		d.Stats.Depth = depth
		d.Stats.Nodes = d.Searcher.Nodes() - startNodes
		d.Stats.Cutoffs = d.Searcher.Cutoffs() - startCutoffs

		top := table[0]
		logger.Info().
			Int("depth", depth).
			Str("move", position.MoveString(top.Move)).
			Str("score", ScoreString(top.Score)).
			Uint64("nodes", d.Stats.Nodes).
			Uint64("cutoffs", d.Stats.Cutoffs).
			Msg("deepening-iteratively")

		if IsMateScore(top.Score) {
			break
		}
	}

	if pos.Ply() != startPly || pos.Hash() != startHash {
		return 0, 0, fmt.Errorf("%w: position not restored after search", ErrInvariant)
	}

	best := table.Best(white)
	ties := table.Ties(best)
	pick := ties[d.Rand.Intn(len(ties))]
	logger.Debug().
		Str("move", position.MoveString(pick.Move)).
		Str("score", ScoreString(pick.Score)).
		Int("ties", len(ties)).
		Msg("move-chosen")
	return pick.Move, pick.Score, nil
}

// recoverInvariant turns invariant panics raised inside a search into the
// returned error. Anything else keeps panicking.
func recoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok && (errors.Is(e, ErrInvariant) || errors.Is(e, position.ErrUnbalancedPop)) {
		*err = e
		return
	}
	panic(r)
}
