package engine

import (
	"errors"
	"testing"

	"chess-search/position"
)

func TestStackSearchMatchesRecursive(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	windows := [][2]int32{
		{MinEval, MaxEval},
		{-2000, 2000},
		{-50, 50},
		{3000, 3001},
	}
	fens := walkCorpus(2, 6)
	for depth := 0; depth <= 3; depth++ {
		for i, fen := range fens {
			if depth == 3 && i >= 4 {
				break
			}
			for _, w := range windows {
				pos := mustFEN(t, fen)
				rec, stk := NewRecursive(e), NewStackSearch(e)
				want := rec.Search(pos, depth, w[0], w[1])
				got := stk.Search(pos, depth, w[0], w[1])
				if got != want {
					t.Fatalf("%q depth %d window %v: stack %d, recursive %d", fen, depth, w, got, want)
				}
				if stk.Nodes() != rec.Nodes() {
					t.Fatalf("%q depth %d window %v: stack visited %d nodes, recursive %d", fen, depth, w, stk.Nodes(), rec.Nodes())
				}
				if stk.Cutoffs() != rec.Cutoffs() {
					t.Fatalf("%q depth %d window %v: stack took %d cutoffs, recursive %d", fen, depth, w, stk.Cutoffs(), rec.Cutoffs())
				}
				if pos.FEN() != fen || pos.Ply() != 0 {
					t.Fatalf("%q: position left at %s", fen, pos.FEN())
				}
			}
		}
	}
}

func TestStackSearchRootMatchesRecursive(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	for _, fen := range tactical[:5] {
		pos := mustFEN(t, fen)
		table := NewCandidates(pos)
		for depth := 1; depth <= 2; depth++ {
			want, err := NewRecursive(e).SearchRoot(pos, depth, table)
			if err != nil {
				t.Fatal(err)
			}
			got, err := NewStackSearch(e).SearchRoot(pos, depth, table)
			if err != nil {
				t.Fatal(err)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("%q depth %d: stack table %s, recursive %s", fen, depth, got, want)
				}
			}
			table = want
		}
	}
}

func TestStackSearchParksAndResumes(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	pos := mustFEN(t, tactical[1])
	fen := pos.FEN()
	want := NewRecursive(e).Search(pos, 2, MinEval, MaxEval)

	s := NewStackSearch(e)
	s.Start(pos, 2, MinEval, MaxEval)
	steps, deepest := 0, 0
	for !s.Run(1) {
		steps++
		if _, done := s.Result(); done {
			t.Fatalf("Result reported done while running")
		}
		// Parked between steps the position carries the walk's own moves.
		if d := pos.Ply(); d > deepest {
			deepest = d
		}
		if pos.Ply() > 2 {
			t.Fatalf("walk went %d plies deep", pos.Ply())
		}
	}
	got, done := s.Result()
	if !done || got != want {
		t.Fatalf("resumed walk: got %d (done %v) want %d", got, done, want)
	}
	if steps == 0 || deepest != 1 {
		t.Fatalf("expected the walk to park inside the tree: steps %d deepest %d", steps, deepest)
	}
	if pos.FEN() != fen || pos.Ply() != 0 {
		t.Fatalf("position left at %s", pos.FEN())
	}
	if s.Step() {
		t.Fatalf("Step after completion reported more work")
	}
}

func TestStackSearchAbortRestoresPosition(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	pos := mustFEN(t, tactical[1])
	fen, hash := pos.FEN(), pos.Hash()

	s := NewStackSearch(e)
	s.Start(pos, 3, MinEval, MaxEval)
	for i := 0; i < 5; i++ {
		s.Step()
	}
	if pos.Ply() == 0 {
		t.Fatalf("expected the walk to have moves on the position")
	}
	s.Abort()
	if pos.FEN() != fen || pos.Hash() != hash || pos.Ply() != 0 {
		t.Fatalf("Abort left position at %s", pos.FEN())
	}
	if _, done := s.Result(); done {
		t.Fatalf("aborted walk reported a result")
	}

	// The machine is reusable after an abort.
	want := NewRecursive(e).Search(pos, 2, MinEval, MaxEval)
	if got := s.Search(pos, 2, MinEval, MaxEval); got != want {
		t.Fatalf("search after abort: got %d want %d", got, want)
	}
}

func TestStackSearchTrivialWalks(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	s := NewStackSearch(e)

	stale := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	s.Start(stale, 3, MinEval, MaxEval)
	if got, done := s.Result(); !done || got != DrawScore {
		t.Fatalf("stalemate root: got %d done %v", got, done)
	}

	start := position.New()
	s.Start(start, 0, MinEval, MaxEval)
	if got, done := s.Result(); !done || got != e.Evaluate(start) {
		t.Fatalf("depth 0: got %d done %v", got, done)
	}
}

func TestStackSearchDetectsForeignMoves(t *testing.T) {
	e := NewEvaluator(&DefaultWeights)
	pos := position.New()
	fen := pos.FEN()
	s := NewStackSearch(e)
	s.Start(pos, 1, MinEval, MaxEval)
	s.Step()

	// Knights out and back: same board, four plies deeper.
	mustPush(t, pos, "Nf3", "Nf6", "Ng1", "Ng8")

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvariant) {
			t.Fatalf("expected ErrInvariant panic, got %v", r)
		}
		// The walk unwinds everything above its base, foreign moves included.
		if pos.Ply() != 0 || pos.FEN() != fen {
			t.Fatalf("position left at %s (ply %d) after the invariant panic", pos.FEN(), pos.Ply())
		}
		if _, done := s.Result(); done {
			t.Fatalf("broken walk reported a result")
		}
		if s.Step() {
			t.Fatalf("broken walk still reports work")
		}
	}()
	for s.Step() {
	}
	t.Fatalf("walk finished despite a foreign push")
}
