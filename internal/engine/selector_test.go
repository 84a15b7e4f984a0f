package engine

import (
	"testing"

	"github.com/hexaflip/chessmind/internal/board"
)

// bookFunc adapts a function to the OpeningBook interface.
type bookFunc func(history []string, randomize bool) (string, bool)

func (f bookFunc) Probe(history []string, randomize bool) (string, bool) {
	return f(history, randomize)
}

func TestFindBestMoveNoLegalMoves(t *testing.T) {
	// Fool's mate: white has no legal move.
	b, side, last, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSelector(1)
	if _, ok := s.FindBestMove(b, side, last, 3, Params{}, false, nil); ok {
		t.Error("expected no move for a checkmated side")
	}
}

func TestFindBestMoveSingleLegalMove(t *testing.T) {
	// White king in check with exactly one escape square.
	b, side, last, err := board.ParseFEN("k7/8/8/8/8/7q/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(board.GenerateLegalMoves(&b, side, last)); n != 1 {
		t.Fatalf("setup broken: %d legal moves, want 1", n)
	}

	s := NewSelector(1)
	m, ok := s.FindBestMove(b, side, last, 3, Params{}, true, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	want, _ := board.ParseMove("h1g1")
	if m != want {
		t.Errorf("got %s, want the forced %s", m, want)
	}
	if s.Nodes() != 0 {
		t.Error("single-move fast path must not search")
	}
}

func TestFindBestMoveMateInOne(t *testing.T) {
	// Back-rank mate: Ra8#.
	b, side, last, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSelector(1)
	m, ok := s.FindBestMove(b, side, last, 2, Params{}, false, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	mate, _ := board.ParseMove("a1a8")
	if m != mate {
		t.Errorf("got %s, want the mate %s", m, mate)
	}
}

func TestFindBestMoveDeterministicWithoutRandomize(t *testing.T) {
	b := board.Starting()

	first, ok := NewSelector(1).FindBestMove(b, board.White, nil, 2, Params{}, false, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	second, ok := NewSelector(1).FindBestMove(b, board.White, nil, 2, Params{}, false, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	if first != second {
		t.Errorf("randomize off must be deterministic: %s vs %s", first, second)
	}
}

func TestFindBestMoveReturnsLegalMove(t *testing.T) {
	b := board.Starting()
	s := NewSelector(1)
	s.Seed(7)

	m, ok := s.FindBestMove(b, board.White, nil, 2, Params{}, true, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	for _, lm := range board.GenerateLegalMoves(&b, board.White, nil) {
		if lm == m {
			return
		}
	}
	t.Errorf("selector returned illegal move %s", m)
}

func TestPickRespectsMarginAndWeights(t *testing.T) {
	a, _ := board.ParseMove("a2a3")
	bm, _ := board.ParseMove("b2b3")
	c, _ := board.ParseMove("c2c3")

	s := NewSelector(1)
	s.Seed(1)

	seen := map[board.Move]int{}
	for i := 0; i < 200; i++ {
		scored := []RootMove{
			{Move: c, Score: 1.0}, // outside the margin
			{Move: a, Score: 5.0},
			{Move: bm, Score: 4.5},
		}
		seen[s.pick(scored, true)]++
	}

	if seen[c] != 0 {
		t.Errorf("move outside the randomization margin was picked %d times", seen[c])
	}
	if seen[a] == 0 || seen[bm] == 0 {
		t.Errorf("both in-margin candidates should appear: a=%d b=%d", seen[a], seen[bm])
	}
	if seen[a] <= seen[bm] {
		t.Errorf("top move carries double weight: a=%d b=%d", seen[a], seen[bm])
	}
}

func TestPickWithoutRandomizeTakesTop(t *testing.T) {
	a, _ := board.ParseMove("a2a3")
	bm, _ := board.ParseMove("b2b3")

	s := NewSelector(1)
	scored := []RootMove{
		{Move: bm, Score: 4.5},
		{Move: a, Score: 5.0},
	}
	if got := s.pick(scored, false); got != a {
		t.Errorf("got %s, want the top scorer", got)
	}
}

func TestBookShortCircuit(t *testing.T) {
	b := board.Starting()
	want, _ := board.ParseMove("e2e4")

	s := NewSelector(1)
	s.SetBook(bookFunc(func(history []string, randomize bool) (string, bool) {
		return "e2e4", true
	}))

	m, ok := s.FindBestMove(b, board.White, nil, 3, Params{}, false, nil)
	if !ok || m != want {
		t.Fatalf("got (%s, %v), want the book move e2e4", m, ok)
	}
	if s.Nodes() != 0 {
		t.Error("book hit must not search")
	}
}

func TestBookIllegalSuggestionIsIgnored(t *testing.T) {
	b := board.Starting()

	for _, suggestion := range []string{"e2e5", "zzzz", "a7a5"} {
		s := NewSelector(1)
		s.SetBook(bookFunc(func(history []string, randomize bool) (string, bool) {
			return suggestion, true
		}))

		m, ok := s.FindBestMove(b, board.White, nil, 2, Params{}, false, nil)
		if !ok {
			t.Fatalf("suggestion %q: expected a searched move", suggestion)
		}
		if m.String() == suggestion {
			t.Errorf("illegal book suggestion %q was played", suggestion)
		}
		if s.Nodes() == 0 {
			t.Errorf("suggestion %q: selector should have fallen back to search", suggestion)
		}
	}
}

func TestBookReceivesHistory(t *testing.T) {
	b := board.Starting()
	var got []string

	s := NewSelector(1)
	s.SetBook(bookFunc(func(history []string, randomize bool) (string, bool) {
		got = append([]string(nil), history...)
		return "", false
	}))

	s.FindBestMove(b, board.White, nil, 1, Params{}, false, []string{"e2e4", "e7e5"})
	if len(got) != 2 || got[0] != "e2e4" || got[1] != "e7e5" {
		t.Errorf("book saw history %v", got)
	}
}

func TestOnRootMoveStreamsEveryRootMove(t *testing.T) {
	b := board.Starting()
	legal := board.GenerateLegalMoves(&b, board.White, nil)

	s := NewSelector(1)
	var events []RootMove
	s.OnRootMove = func(rm RootMove) {
		events = append(events, rm)
	}

	if _, ok := s.FindBestMove(b, board.White, nil, 2, Params{}, false, nil); !ok {
		t.Fatal("expected a move")
	}
	if len(events) != len(legal) {
		t.Errorf("streamed %d root moves, want %d", len(events), len(legal))
	}
}

func TestNewGameClearsSessionTable(t *testing.T) {
	b := board.Starting()
	s := NewSelector(1)

	if _, ok := s.FindBestMove(b, board.White, nil, 2, Params{}, false, nil); !ok {
		t.Fatal("expected a move")
	}
	if s.tt.Len() == 0 {
		t.Fatal("search should have populated the session table")
	}

	s.NewGame()
	if s.tt.Len() != 0 {
		t.Errorf("NewGame left %d entries in the session table", s.tt.Len())
	}
}
