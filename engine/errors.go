package engine

import "errors"

var (
	ErrNoLegalMoves      = errors.New("engine: no legal moves in position")
	ErrInvalidDepth      = errors.New("engine: search depth must be at least 1")
	ErrCandidateMismatch = errors.New("engine: candidate table does not match legal moves")
	ErrInvariant         = errors.New("engine: search invariant violated")
)
