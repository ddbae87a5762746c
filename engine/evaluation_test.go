package engine

import (
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"chess-search/position"
)

func mustFEN(t testing.TB, fen string) *position.Position {
	t.Helper()
	p, err := position.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return p
}

func mustPush(t testing.TB, p *position.Position, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := p.ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q) on %s: %v", s, p.FEN(), err)
		}
		p.Push(m)
	}
}

// mirrorFEN swaps the colours and flips the board vertically.
func mirrorFEN(fen string) string {
	f := strings.Fields(fen)
	ranks := strings.Split(f[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	f[0] = swapCase(strings.Join(ranks, "/"))

	if f[1] == "w" {
		f[1] = "b"
	} else {
		f[1] = "w"
	}

	if f[2] != "-" {
		var upper, lower strings.Builder
		for _, c := range swapCase(f[2]) {
			if c >= 'A' && c <= 'Z' {
				upper.WriteRune(c)
			} else {
				lower.WriteRune(c)
			}
		}
		f[2] = upper.String() + lower.String()
	}

	if f[3] != "-" {
		rank := byte('3')
		if f[3][1] == '3' {
			rank = '6'
		}
		f[3] = string([]byte{f[3][0], rank})
	}
	return strings.Join(f, " ")
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return r
	}, s)
}

func TestEvaluateTerminalPositions(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	tests := []struct {
		name string
		fen  string
		want int32
	}{
		{"white mated", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", MinEval},
		{"black mated", "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1", MaxEval},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", DrawScore},
		{"fifty moves", "8/8/8/4k3/8/8/8/4K2R w - - 100 80", DrawScore},
	}
	for _, tt := range tests {
		if got := e.Evaluate(mustFEN(t, tt.fen)); got != tt.want {
			t.Fatalf("%s: got %s want %s", tt.name, ScoreString(got), ScoreString(tt.want))
		}
	}
}

func TestEvaluateRepetitionIsDraw(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	p := position.New()
	mustPush(t, p, "Nf3", "Nf6", "Ng1", "Ng8", "Nf3", "Nf6", "Ng1", "Ng8")
	if got := e.Evaluate(p); got != DrawScore {
		t.Fatalf("threefold repetition scored %s", ScoreString(got))
	}
}

func TestEvaluateStartPositionIsLevel(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	if got := e.Evaluate(position.New()); got != 0 {
		t.Fatalf("start position scored %d", got)
	}
}

func TestEvaluateIsColourSymmetric(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4r1k1/5ppp/8/8/8/8/5PPP/6K1 w - - 0 1",
	}
	for _, fen := range fens {
		mirrored := mirrorFEN(fen)
		a := e.Evaluate(mustFEN(t, fen))
		b := e.Evaluate(mustFEN(t, mirrored))
		if a != -b {
			t.Fatalf("%q scored %d, mirror %q scored %d", fen, a, mirrored, b)
		}
	}
}

func TestEvaluateLeavesPositionUntouched(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	p := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	mustPush(t, p, "Bxa6")
	fen, hash, ply := p.FEN(), p.Hash(), p.Ply()
	e.Evaluate(p)
	if p.FEN() != fen || p.Hash() != hash || p.Ply() != ply {
		t.Fatalf("Evaluate moved the position to %s", p.FEN())
	}
}

func TestEvaluateSwitchesTablesOnQueens(t *testing.T) {
	var w Weights
	for sq := range w.Endgame[dragontoothmg.Pawn] {
		w.Endgame[dragontoothmg.Pawn][sq] = 500
	}
	e := NewEvaluator(&w)

	if got := e.Evaluate(mustFEN(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")); got != 500 {
		t.Fatalf("queenless position should use the endgame table, got %d", got)
	}
	if got := e.Evaluate(mustFEN(t, "3qk3/8/8/8/8/8/4P3/3QK3 w - - 0 1")); got != 0 {
		t.Fatalf("position with queens should use the midgame table, got %d", got)
	}
}

func TestEvaluateTacticalCredit(t *testing.T) {
	quiet := DefaultWeights
	quiet.CheckBonus = 0
	quiet.CaptureBonus = 0
	full, bare := NewEvaluator(&DefaultWeights), NewEvaluator(&quiet)

	// White has just checked, Black to move.
	check := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	mustPush(t, check, "Ra8+")
	if diff := full.Evaluate(check) - bare.Evaluate(check); diff != DefaultWeights.CheckBonus {
		t.Fatalf("check credit: got %d want %d", diff, DefaultWeights.CheckBonus)
	}

	// Black has just captured, White to move.
	capture := mustFEN(t, "4k3/8/8/3p4/4N3/8/8/4K3 b - - 0 1")
	mustPush(t, capture, "dxe4")
	if diff := full.Evaluate(capture) - bare.Evaluate(capture); diff != -DefaultWeights.CaptureBonus {
		t.Fatalf("capture credit: got %d want %d", diff, -DefaultWeights.CaptureBonus)
	}
}

func TestNewEvaluatorCopiesWeights(t *testing.T) {
	w := DefaultWeights
	e := NewEvaluator(&w)
	before := e.Evaluate(position.New())
	w.PieceValues[dragontoothmg.Queen] = 1
	w.MobilityBonus = 10000
	if got := e.Evaluate(position.New()); got != before {
		t.Fatalf("evaluator picked up caller's changes: %d != %d", got, before)
	}
	if e.Weights().MobilityBonus != DefaultWeights.MobilityBonus {
		t.Fatalf("Weights() returned %d", e.Weights().MobilityBonus)
	}
}

func TestScoreString(t *testing.T) {
	tests := map[int32]string{
		MaxEval: "mate(white)",
		MinEval: "mate(black)",
		0:       "0.000",
		1500:    "1.500",
		-250:    "-0.250",
	}
	for s, want := range tests {
		if got := ScoreString(s); got != want {
			t.Fatalf("ScoreString(%d): got %q want %q", s, got, want)
		}
	}
}
