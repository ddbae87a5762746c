package position

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

var (
	ErrBadNotation    = errors.New("position: unrecognised move notation")
	ErrIllegalMove    = errors.New("position: illegal move")
	ErrMovesIntoCheck = errors.New("position: move leaves own king in check")
)

// ParseMove reads a hand-entered move in UCI coordinate form (e2e4, e7e8q)
// or standard algebraic form (Nf3, exd5, O-O, e8=Q+) and returns the
// matching legal move.
func (p *Position) ParseMove(s string) (dragontoothmg.Move, error) {
	s = strings.TrimSpace(s)
	m, err := dragontoothmg.ParseMove(strings.ToLower(s))
	if err != nil || !looksLikeCoordinates(s) {
		m, err = p.parseSAN(s)
		if err != nil {
			return 0, err
		}
	}
	for _, legal := range p.board.GenerateLegalMoves() {
		if legal == m {
			return legal, nil
		}
	}
	if p.MovesIntoCheck(m) {
		return 0, fmt.Errorf("%w: %s", ErrMovesIntoCheck, s)
	}
	return 0, fmt.Errorf("%w: %s", ErrIllegalMove, s)
}

// MoveString renders m in UCI coordinate form.
func MoveString(m dragontoothmg.Move) string { return m.String() }

func (p *Position) parseSAN(s string) (dragontoothmg.Move, error) {
	opt, err := chess.FEN(p.board.ToFen())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	pos := chess.NewGame(opt).Position()
	decoded, err := chess.AlgebraicNotation{}.Decode(pos, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBadNotation, s, err)
	}
	m, err := dragontoothmg.ParseMove(chess.UCINotation{}.Encode(pos, decoded))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBadNotation, s, err)
	}
	return m, nil
}

// looksLikeCoordinates filters out SAN strings such as "Bb1c2" that happen to
// contain four coordinate characters.
func looksLikeCoordinates(s string) bool {
	if len(s) != 4 && len(s) != 5 {
		return false
	}
	for i := 0; i < 4; i++ {
		c := s[i]
		if i%2 == 0 && (c < 'a' || c > 'h') {
			return false
		}
		if i%2 == 1 && (c < '1' || c > '8') {
			return false
		}
	}
	return len(s) == 4 || strings.ContainsRune("qrbnQRBN", rune(s[4]))
}
