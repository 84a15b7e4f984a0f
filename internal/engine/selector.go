package engine

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/hexaflip/chessmind/internal/board"
)

// randomizeMargin keeps every root move scoring within this distance of
// the best one as a randomization candidate.
const randomizeMargin = 1.0

// OpeningBook is the external opening-book collaborator: given the ordered
// move history (long algebraic from/to strings) and the randomize flag, it
// may suggest a candidate move. The selector verifies legality before
// trusting it.
type OpeningBook interface {
	Probe(history []string, randomize bool) (string, bool)
}

// RootMove pairs a root move with its search score.
type RootMove struct {
	Move  board.Move
	Score float64
}

// Selector is the top-level driver: it generates root moves, scores each
// with one search call, and picks among near-optimal candidates. The
// transposition table it owns persists across searches within one game
// session and is cleared by NewGame.
type Selector struct {
	tt      *TransTable
	book    OpeningBook
	weights Weights
	rng     *rand.Rand
	nodes   uint64

	// OnRootMove, when set, is invoked with every scored root move.
	// The analysis surface streams these to observers.
	OnRootMove func(RootMove)
}

// NewSelector creates a selector with a session transposition table of the
// given size budget in MB.
func NewSelector(ttSizeMB int) *Selector {
	return &Selector{
		tt:      NewTransTable(ttSizeMB),
		weights: DefaultWeights(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetBook attaches an opening-book collaborator.
func (s *Selector) SetBook(b OpeningBook) {
	s.book = b
}

// SetWeights replaces the evaluation tuning weights.
func (s *Selector) SetWeights(w Weights) {
	s.weights = w
}

// Weights returns the current evaluation weights.
func (s *Selector) Weights() Weights {
	return s.weights
}

// Seed reseeds the randomization source (tests pin it for reproducibility).
func (s *Selector) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Nodes returns the node count of the most recent search.
func (s *Selector) Nodes() uint64 {
	return s.nodes
}

// NewGame clears the session transposition table so entries from a
// previous game never influence the next one.
func (s *Selector) NewGame() {
	s.tt.Clear()
}

// FindBestMove chooses a move for color at the given search depth, or
// returns false when color has no legal move (the caller infers game over:
// checkmate, stalemate or no mobility).
//
// The opening book may short-circuit the search entirely when it suggests
// a move that is legal in the current position. A single legal move is
// returned without searching. Otherwise every root move is scored by one
// minimax call at depth−1 from the opponent's perspective; with randomize
// off the top scorer wins, with it on a weighted draw is made among moves
// within the randomization margin of the best (the top move weighted 2,
// the rest 1).
func (s *Selector) FindBestMove(b board.Board, color board.Color, last *board.LastMove, depth int, params Params, randomize bool, history []string) (board.Move, bool) {
	moves := board.GenerateLegalMoves(&b, color, last)
	if len(moves) == 0 {
		return board.NoMove, false
	}

	if bookMove, ok := s.probeBook(&b, moves, randomize, history); ok {
		return bookMove, true
	}

	if len(moves) == 1 {
		return moves[0], true
	}

	search := NewSearch(s.tt, params, s.weights, color, depth)
	scored := make([]RootMove, 0, len(moves))
	for _, m := range moves {
		next, nextLast := board.Simulate(b, m)
		score := search.Minimax(next, nextLast, depth-1, math.Inf(-1), math.Inf(1), false)
		rm := RootMove{Move: m, Score: score}
		scored = append(scored, rm)
		if s.OnRootMove != nil {
			s.OnRootMove(rm)
		}
	}
	s.nodes = search.Nodes()

	return s.pick(scored, randomize), true
}

// probeBook asks the opening book for a candidate and accepts it only if
// it matches a generated legal move (promotion variant included).
func (s *Selector) probeBook(b *board.Board, legal []board.Move, randomize bool, history []string) (board.Move, bool) {
	if s.book == nil {
		return board.NoMove, false
	}

	suggestion, ok := s.book.Probe(history, randomize)
	if !ok {
		return board.NoMove, false
	}

	m, err := board.ParseMove(suggestion)
	if err != nil {
		return board.NoMove, false
	}
	for _, lm := range legal {
		if lm == m {
			return lm, true
		}
	}
	return board.NoMove, false
}

// sortRootMoves orders scored root moves descending by score.
func sortRootMoves(scored []RootMove) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

// pick sorts the scored moves descending and applies the randomization
// policy.
func (s *Selector) pick(scored []RootMove, randomize bool) board.Move {
	sortRootMoves(scored)

	if !randomize {
		return scored[0].Move
	}

	best := scored[0].Score
	candidates := scored[:0]
	for _, rm := range scored {
		if best-rm.Score <= randomizeMargin {
			candidates = append(candidates, rm)
		}
	}

	// Top move gets weight 2, every other candidate weight 1.
	total := len(candidates) + 1
	r := s.rng.Intn(total)
	if r < 2 {
		return candidates[0].Move
	}
	return candidates[r-1].Move
}
