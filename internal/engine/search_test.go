package engine

import (
	"math"
	"testing"

	"github.com/hexaflip/chessmind/internal/board"
)

// refMinimax is an unpruned reference search sharing the quiescence and
// terminal rules with Search.Minimax. Alpha-beta must return the same root
// score over a full window.
func refMinimax(s *Search, b board.Board, last *board.LastMove, depth int, maximizing bool) float64 {
	persp := EffectiveColor(s.rootColor, s.rootDepth, depth, s.params.Mode)
	sideToMove := persp
	if !maximizing {
		sideToMove = persp.Other()
	}

	if depth == 0 {
		return s.quiescence(b, last, depth, math.Inf(-1), math.Inf(1), maximizing, quiescenceMaxDepth)
	}

	moves := board.GenerateLegalMoves(&b, sideToMove, last)
	if len(moves) == 0 {
		if board.IsInCheck(&b, sideToMove) {
			if maximizing {
				return -WinScore
			}
			return WinScore
		}
		return 0
	}

	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	for _, m := range moves {
		next, nextLast := board.Simulate(b, m)
		score := refMinimax(s, next, nextLast, depth-1, !maximizing)
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best
}

func TestMinimaxDetectsMate(t *testing.T) {
	// Fool's mate: white to move, checkmated.
	b, _, last, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSearch(nil, Params{}, DefaultWeights(), board.White, 2)
	if got := s.Minimax(b, last, 2, math.Inf(-1), math.Inf(1), true); got != -WinScore {
		t.Errorf("mated maximizing side: score = %f, want %f", got, -WinScore)
	}

	// Seen from black's root, the mated white side is the minimizing player.
	s = NewSearch(nil, Params{}, DefaultWeights(), board.Black, 2)
	if got := s.Minimax(b, last, 2, math.Inf(-1), math.Inf(1), false); got != WinScore {
		t.Errorf("mated minimizing side: score = %f, want %f", got, WinScore)
	}
}

func TestMinimaxStalemateIsDraw(t *testing.T) {
	b, _, last, err := board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSearch(nil, Params{}, DefaultWeights(), board.Black, 2)
	if got := s.Minimax(b, last, 2, math.Inf(-1), math.Inf(1), true); got != 0 {
		t.Errorf("stalemate score = %f, want 0", got)
	}
}

func TestQuiescenceStandPatOnQuietPosition(t *testing.T) {
	// With no captures available, depth zero scores exactly the static
	// evaluation.
	b := board.Starting()
	w := DefaultWeights()

	s := NewSearch(nil, Params{}, w, board.White, 0)
	got := s.Minimax(b, nil, 0, math.Inf(-1), math.Inf(1), true)
	want := Evaluate(&b, board.White, Params{}, w)
	if got != want {
		t.Errorf("quiet stand-pat = %f, want static evaluation %f", got, want)
	}
}

func TestQuiescenceResolvesHangingQueen(t *testing.T) {
	// White's pawn can take an undefended queen. The static evaluation says
	// white is down a queen; quiescence must see through the capture.
	b, _, last, err := board.ParseFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	w := DefaultWeights()

	static := Evaluate(&b, board.White, Params{}, w)
	if static > -5 {
		t.Fatalf("setup broken: static evaluation %f should show a queen deficit", static)
	}

	s := NewSearch(nil, Params{}, w, board.White, 0)
	got := s.Minimax(b, last, 0, math.Inf(-1), math.Inf(1), true)
	if got < 0 {
		t.Errorf("quiescence score = %f, want a positive score after winning the queen", got)
	}
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	cases := []struct {
		name   string
		fen    string
		depth  int
		params Params
	}{
		{"ItalianOpening", "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK1NR w KQkq - 0 4", 3, Params{}},
		{"HangingQueen", "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", 3, Params{}},
		{"Rotating", "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", 3, Params{Mode: ModeRotating}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, side, last, err := board.ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}

			pruned := NewSearch(nil, tc.params, DefaultWeights(), side, tc.depth)
			got := pruned.Minimax(b, last, tc.depth, math.Inf(-1), math.Inf(1), true)

			ref := NewSearch(nil, tc.params, DefaultWeights(), side, tc.depth)
			want := refMinimax(ref, b, last, tc.depth, true)

			if got != want {
				t.Errorf("alpha-beta score %f != plain minimax score %f", got, want)
			}
		})
	}
}

func TestTranspositionTableDoesNotChangeScore(t *testing.T) {
	// At root depth 2 every interior position is unique within the search,
	// so caching cannot alter any value; the table may only skip work.
	cases := []string{
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK1NR w KQkq - 0 4",
		"4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1",
	}
	for _, fen := range cases {
		b, side, last, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}

		with := NewSearch(NewTransTable(1), Params{}, DefaultWeights(), side, 2)
		without := NewSearch(nil, Params{}, DefaultWeights(), side, 2)

		got := with.Minimax(b, last, 2, math.Inf(-1), math.Inf(1), true)
		want := without.Minimax(b, last, 2, math.Inf(-1), math.Inf(1), true)
		if got != want {
			t.Errorf("%s: score with table %f != score without %f", fen, got, want)
		}
	}
}

func TestRotatingModeKeysCacheByPhase(t *testing.T) {
	// The same position searched to the same depth sits in different
	// rotation phases when its distance from the root differs; a score
	// cached under one perspective schedule must not answer the other.
	b, side, last, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	w := DefaultWeights()
	params := Params{Mode: ModeRotating}

	tt := NewTransTable(1)
	warm := NewSearch(tt, params, w, side, 2)
	warm.Minimax(b, last, 2, math.Inf(-1), math.Inf(1), true)

	// Same position and depth, but two plies from this search's root.
	probe := NewSearch(tt, params, w, side, 4)
	got := probe.Minimax(b, last, 2, math.Inf(-1), math.Inf(1), true)

	ref := NewSearch(nil, params, w, side, 4)
	want := ref.Minimax(b, last, 2, math.Inf(-1), math.Inf(1), true)
	if got != want {
		t.Errorf("cross-phase cache hit: got %f, want %f", got, want)
	}
}

func TestMinimaxTranspositionHitIsStable(t *testing.T) {
	b, side, last, err := board.ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK1NR w KQkq - 0 4")
	if err != nil {
		t.Fatal(err)
	}

	tt := NewTransTable(1)
	s := NewSearch(tt, Params{}, DefaultWeights(), side, 3)
	first := s.Minimax(b, last, 3, math.Inf(-1), math.Inf(1), true)

	nodesBefore := s.Nodes()
	second := s.Minimax(b, last, 3, math.Inf(-1), math.Inf(1), true)

	if first != second {
		t.Errorf("repeat search scored %f, first search %f", second, first)
	}
	if s.Nodes() != nodesBefore+1 {
		t.Errorf("repeat search should be a single table hit, visited %d extra nodes", s.Nodes()-nodesBefore)
	}
}

func TestMinimaxCountsNodes(t *testing.T) {
	b := board.Starting()
	s := NewSearch(nil, Params{}, DefaultWeights(), board.White, 2)
	s.Minimax(b, nil, 2, math.Inf(-1), math.Inf(1), true)
	if s.Nodes() == 0 {
		t.Error("node counter never advanced")
	}
}
