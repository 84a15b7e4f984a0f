package engine

import (
	"testing"

	"github.com/hexaflip/chessmind/internal/board"
)

func TestScoreRootMovesParallelCoversAllMoves(t *testing.T) {
	b := board.Starting()
	legal := board.GenerateLegalMoves(&b, board.White, nil)

	for _, batches := range []int{1, 3, 8, 100} {
		scored, nodes := ScoreRootMovesParallel(b, board.White, nil, 2, Params{}, DefaultWeights(), batches)
		if len(scored) != len(legal) {
			t.Fatalf("batches=%d: scored %d moves, want %d", batches, len(scored), len(legal))
		}
		if nodes == 0 {
			t.Errorf("batches=%d: no nodes reported", batches)
		}

		seen := map[board.Move]bool{}
		for i, rm := range scored {
			seen[rm.Move] = true
			if i > 0 && scored[i-1].Score < rm.Score {
				t.Errorf("batches=%d: results not sorted descending at index %d", batches, i)
			}
		}
		for _, m := range legal {
			if !seen[m] {
				t.Errorf("batches=%d: move %s missing from results", batches, m)
			}
		}
	}
}

func TestScoreRootMovesParallelNoMoves(t *testing.T) {
	b, side, last, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3")
	if err != nil {
		t.Fatal(err)
	}
	got, nodes := ScoreRootMovesParallel(b, side, last, 2, Params{}, DefaultWeights(), 4)
	if got != nil {
		t.Errorf("expected nil for a position with no legal moves, got %v", got)
	}
	if nodes != 0 {
		t.Errorf("expected zero nodes, got %d", nodes)
	}
}

func TestScoreRootMovesParallelFindsMate(t *testing.T) {
	b, side, last, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	mate, _ := board.ParseMove("a1a8")
	for _, batches := range []int{1, 2, 4} {
		scored, _ := ScoreRootMovesParallel(b, side, last, 2, Params{}, DefaultWeights(), batches)
		if len(scored) == 0 {
			t.Fatalf("batches=%d: no results", batches)
		}
		if scored[0].Move != mate || scored[0].Score != WinScore {
			t.Errorf("batches=%d: top = (%s, %f), want (%s, %f)",
				batches, scored[0].Move, scored[0].Score, mate, WinScore)
		}
	}
}

func TestFindBestMoveParallelMatchesSerialPick(t *testing.T) {
	b, side, last, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	serial := NewSelector(1)
	want, ok := serial.FindBestMove(b, side, last, 2, Params{}, false, nil)
	if !ok {
		t.Fatal("serial selector found no move")
	}

	parallel := NewSelector(1)
	got, ok := parallel.FindBestMoveParallel(b, side, last, 2, Params{}, false, nil, 4)
	if !ok {
		t.Fatal("parallel selector found no move")
	}
	if got != want {
		t.Errorf("parallel pick %s != serial pick %s", got, want)
	}
}

func TestFindBestMoveParallelCountsNodes(t *testing.T) {
	b := board.Starting()
	s := NewSelector(1)

	if _, ok := s.FindBestMoveParallel(b, board.White, nil, 2, Params{}, false, nil, 4); !ok {
		t.Fatal("expected a move")
	}
	if s.Nodes() == 0 {
		t.Error("parallel search did not report its node count")
	}
}

func TestFindBestMoveParallelFastPaths(t *testing.T) {
	// Forced single move skips the batch machinery.
	b, side, last, err := board.ParseFEN("k7/8/8/8/8/7q/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSelector(1)
	m, ok := s.FindBestMoveParallel(b, side, last, 3, Params{}, true, nil, 4)
	if !ok {
		t.Fatal("expected a move")
	}
	want, _ := board.ParseMove("h1g1")
	if m != want {
		t.Errorf("got %s, want %s", m, want)
	}

	// Book hits short-circuit identically to the serial path.
	start := board.Starting()
	s.SetBook(bookFunc(func(history []string, randomize bool) (string, bool) {
		return "d2d4", true
	}))
	book, _ := board.ParseMove("d2d4")
	m, ok = s.FindBestMoveParallel(start, board.White, nil, 3, Params{}, false, nil, 4)
	if !ok || m != book {
		t.Fatalf("got (%s, %v), want the book move d2d4", m, ok)
	}
}
