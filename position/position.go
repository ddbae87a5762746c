// Package position wraps the dragontoothmg move generator into the mutable
// game state the search consumes: legal move enumeration, LIFO push/pop,
// terminal and draw queries, and per-move tactical questions.
package position

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrBadFEN        = errors.New("position: invalid FEN")
	ErrUnbalancedPop = errors.New("position: pop without matching push")
)

// Position is a single game state plus the history of pushed moves. It is
// not safe for concurrent use.
type Position struct {
	board   dragontoothmg.Board
	history []state
}

// New returns the standard starting position.
func New() *Position {
	p, err := FromFEN(Startpos)
	if err != nil {
		panic(err)
	}
	return p
}

// FromFEN builds a position from a FEN string. The FEN is validated by the
// notnil/chess parser before dragontoothmg sees it, since the latter does not
// report malformed input.
func FromFEN(fen string) (*Position, error) {
	fen = strings.TrimSpace(fen)
	if _, err := chess.FEN(fen); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadFEN, fen, err)
	}
	p := &Position{board: dragontoothmg.ParseFen(fen)}
	p.history = append(p.history, state{
		hash:   p.board.Hash(),
		rule50: int(p.board.Halfmoveclock),
	})
	return p, nil
}

// WhiteToMove reports whether White is the side to move.
func (p *Position) WhiteToMove() bool { return p.board.Wtomove }

// Hash is the zobrist key of the current position.
func (p *Position) Hash() uint64 { return p.board.Hash() }

// FEN serialises the current position.
func (p *Position) FEN() string { return p.board.ToFen() }

// Ply is the number of moves pushed since construction.
func (p *Position) Ply() int { return len(p.history) - 1 }

// LegalMoves returns every legal move for the side to move.
func (p *Position) LegalMoves() []dragontoothmg.Move {
	return p.board.GenerateLegalMoves()
}

// Captures returns the legal capturing moves, en passant included.
func (p *Position) Captures() []dragontoothmg.Move {
	return p.captures(p.board.GenerateLegalMoves())
}

// Castles returns the legal castling moves.
func (p *Position) Castles() []dragontoothmg.Move {
	return p.castles(p.board.GenerateLegalMoves())
}

// OrderedMoves returns the legal moves with castling moves first, then
// captures, then everything else. Each move appears exactly once.
func (p *Position) OrderedMoves() []dragontoothmg.Move {
	moves := p.board.GenerateLegalMoves()
	ordered := make([]dragontoothmg.Move, 0, len(moves))
	ordered = append(ordered, p.castles(moves)...)
	ordered = append(ordered, p.captures(moves)...)
	for _, m := range moves {
		if !p.isCastle(m) && !p.IsCapture(m) {
			ordered = append(ordered, m)
		}
	}
	return ordered
}

func (p *Position) captures(moves []dragontoothmg.Move) []dragontoothmg.Move {
	var captures []dragontoothmg.Move
	for _, m := range moves {
		if !p.isCastle(m) && p.IsCapture(m) {
			captures = append(captures, m)
		}
	}
	return captures
}

func (p *Position) castles(moves []dragontoothmg.Move) []dragontoothmg.Move {
	var castles []dragontoothmg.Move
	for _, m := range moves {
		if p.isCastle(m) {
			castles = append(castles, m)
		}
	}
	return castles
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.board.OurKingInCheck() }

func (p *Position) IsCheckmate() bool {
	return p.board.OurKingInCheck() && len(p.board.GenerateLegalMoves()) == 0
}

func (p *Position) IsStalemate() bool {
	return !p.board.OurKingInCheck() && len(p.board.GenerateLegalMoves()) == 0
}

// IsCapture reports whether m takes a piece, including en passant.
func (p *Position) IsCapture(m dragontoothmg.Move) bool {
	if dragontoothmg.IsCapture(m, &p.board) {
		return true
	}
	// A pawn changing file onto an empty square can only be en passant.
	piece, _, ok := p.PieceAt(m.From())
	return ok && piece == dragontoothmg.Pawn && m.From()%8 != m.To()%8
}

// GivesCheck reports whether playing m leaves the opponent in check.
func (p *Position) GivesCheck(m dragontoothmg.Move) bool {
	p.Push(m)
	check := p.board.OurKingInCheck()
	p.Pop()
	return check
}

// MovesIntoCheck reports whether m would leave the mover's own king
// attacked. Legal moves never do; this is meant for validating
// hand-entered moves that moved a piece of the side to move.
func (p *Position) MovesIntoCheck(m dragontoothmg.Move) (into bool) {
	_, white, ok := p.PieceAt(m.From())
	if !ok || white != p.board.Wtomove {
		return false
	}
	defer func() {
		if recover() != nil {
			into = false
		}
	}()
	scratch := p.board
	scratch.Apply(m)
	scratch.Wtomove = !scratch.Wtomove
	return scratch.OurKingInCheck()
}

// HasQueens reports whether either side still has a queen.
func (p *Position) HasQueens() bool {
	return p.board.White.Queens|p.board.Black.Queens != 0
}

// Occupied is the bitboard of all pieces on the board.
func (p *Position) Occupied() uint64 {
	return p.board.White.All | p.board.Black.All
}

// PieceAt returns the piece type on sq and whether it is White's.
func (p *Position) PieceAt(sq uint8) (piece dragontoothmg.Piece, white bool, ok bool) {
	if piece, ok = pieceOn(sq, &p.board.White); ok {
		return piece, true, true
	}
	if piece, ok = pieceOn(sq, &p.board.Black); ok {
		return piece, false, true
	}
	return 0, false, false
}

// OpponentMoveCount is the number of legal moves the side not to move would
// have if it were its turn. Computed on a turn-passed copy with the en
// passant square cleared.
func (p *Position) OpponentMoveCount() int {
	fields := strings.Fields(p.board.ToFen())
	if len(fields) < 4 {
		return 0
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"
	passed := dragontoothmg.ParseFen(strings.Join(fields, " "))
	return len(passed.GenerateLegalMoves())
}

func (p *Position) isCastle(m dragontoothmg.Move) bool {
	piece, _, ok := p.PieceAt(m.From())
	if !ok || piece != dragontoothmg.King {
		return false
	}
	return m.From()-m.To() == 2 || m.To()-m.From() == 2
}

func pieceOn(sq uint8, bb *dragontoothmg.Bitboards) (dragontoothmg.Piece, bool) {
	mask := uint64(1) << sq
	if bb.All&mask == 0 {
		return 0, false
	}
	switch {
	case bb.Pawns&mask != 0:
		return dragontoothmg.Pawn, true
	case bb.Knights&mask != 0:
		return dragontoothmg.Knight, true
	case bb.Bishops&mask != 0:
		return dragontoothmg.Bishop, true
	case bb.Rooks&mask != 0:
		return dragontoothmg.Rook, true
	case bb.Queens&mask != 0:
		return dragontoothmg.Queen, true
	case bb.Kings&mask != 0:
		return dragontoothmg.King, true
	}
	return 0, false
}
