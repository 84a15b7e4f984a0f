package engine

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hexaflip/chessmind/internal/board"
)

// batchTTSizeMB is the transposition table budget for each root batch.
// Batch tables are independent and discarded after the search; sharing
// killer or transposition state across concurrent searches would corrupt
// cutoff decisions.
const batchTTSizeMB = 4

// ScoreRootMovesParallel splits the root moves into batches and evaluates
// each batch in its own goroutine, every batch running a complete search
// with an independent transposition table and killer table. The merged
// (move, score) pairs are returned sorted descending by score, together
// with the total node count across batches; no shared mutable state
// crosses batch boundaries while searching.
func ScoreRootMovesParallel(b board.Board, color board.Color, last *board.LastMove, depth int, params Params, weights Weights, batches int) ([]RootMove, uint64) {
	moves := board.GenerateLegalMoves(&b, color, last)
	if len(moves) == 0 {
		return nil, 0
	}

	if batches < 1 {
		batches = 1
	}
	if batches > len(moves) {
		batches = len(moves)
	}

	results := make([][]RootMove, batches)
	counts := make([]uint64, batches)
	var g errgroup.Group

	for i := 0; i < batches; i++ {
		batch := moves[i*len(moves)/batches : (i+1)*len(moves)/batches]
		out := &results[i]
		count := &counts[i]
		g.Go(func() error {
			search := NewSearch(NewTransTable(batchTTSizeMB), params, weights, color, depth)
			scored := make([]RootMove, 0, len(batch))
			for _, m := range batch {
				next, nextLast := board.Simulate(b, m)
				score := search.Minimax(next, nextLast, depth-1, math.Inf(-1), math.Inf(1), false)
				scored = append(scored, RootMove{Move: m, Score: score})
			}
			*out = scored
			*count = search.Nodes()
			return nil
		})
	}
	g.Wait()

	merged := make([]RootMove, 0, len(moves))
	for _, r := range results {
		merged = append(merged, r...)
	}
	sortRootMoves(merged)

	var nodes uint64
	for _, n := range counts {
		nodes += n
	}
	return merged, nodes
}

// FindBestMoveParallel is the root-split variant of FindBestMove. The
// opening book and single-move fast paths behave identically; the root
// scoring is distributed across the given number of batches.
func (s *Selector) FindBestMoveParallel(b board.Board, color board.Color, last *board.LastMove, depth int, params Params, randomize bool, history []string, batches int) (board.Move, bool) {
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

	scored, nodes := ScoreRootMovesParallel(b, color, last, depth, params, s.weights, batches)
	s.nodes = nodes
	if s.OnRootMove != nil {
		for _, rm := range scored {
			s.OnRootMove(rm)
		}
	}
	return s.pick(scored, randomize), true
}
