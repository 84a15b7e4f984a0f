package engine

import (
	"math"

	"github.com/hexaflip/chessmind/internal/board"
)

// quiescenceMaxDepth caps the capture-only extension so long capture
// chains always terminate.
const quiescenceMaxDepth = 10

// rotationPhaseKeys separates transposition keys by plies from the root
// modulo the rotation period. In the rotating mode the perspective schedule
// of a node's whole subtree is a function of plies mod 4, so identical
// positions in different phases must never share a cached score.
var rotationPhaseKeys = [4]uint64{
	0,
	0x9e3779b97f4a7c15,
	0xc2b2ae3d27d4eb4f,
	0x165667b19e3779f9,
}

// Search is one search invocation's state: its transposition table, killer
// table, evaluation weights and the root parameters needed to resolve
// perspective under color rotation. All of it is explicit per-invocation
// state; concurrent searches each own their tables.
//
// The search itself is synchronous single-threaded recursion with no
// suspension points; a call runs to completion. Callers bound work by
// choosing the root depth, not by interrupting mid-search.
type Search struct {
	tt        *TransTable // nil disables transposition caching
	killers   *KillerTable
	weights   Weights
	params    Params
	rootColor board.Color
	rootDepth int

	nodes uint64
}

// NewSearch creates a search invocation for one root position. The killer
// table starts empty, fulfilling the clear-per-top-level-search rule.
func NewSearch(tt *TransTable, params Params, weights Weights, rootColor board.Color, rootDepth int) *Search {
	return &Search{
		tt:        tt,
		killers:   NewKillerTable(),
		weights:   weights,
		params:    params,
		rootColor: rootColor,
		rootDepth: rootDepth,
	}
}

// Nodes returns the number of nodes visited so far.
func (s *Search) Nodes() uint64 {
	return s.nodes
}

// Minimax searches the position to the given depth with alpha-beta pruning
// and returns its score from the maximizing player's perspective. The node
// order is: resolve perspective, probe the transposition table, hand depth
// zero to quiescence, detect terminal positions, order moves, recurse with
// cutoffs, and store the result tagged by how it relates to the original
// window.
func (s *Search) Minimax(b board.Board, last *board.LastMove, depth int, alpha, beta float64, maximizing bool) float64 {
	s.nodes++

	persp := EffectiveColor(s.rootColor, s.rootDepth, depth, s.params.Mode)
	sideToMove := persp
	if !maximizing {
		sideToMove = persp.Other()
	}

	var key uint64
	if s.tt != nil {
		key = board.Hash(&b, sideToMove)
		if s.params.Mode == ModeRotating {
			key ^= rotationPhaseKeys[(s.rootDepth-depth)%4]
		}
		if score, ok := s.tt.Probe(key, depth, alpha, beta); ok {
			return score
		}
	}

	if depth == 0 {
		return s.quiescence(b, last, depth, alpha, beta, maximizing, quiescenceMaxDepth)
	}

	moves := board.GenerateLegalMoves(&b, sideToMove, last)
	if len(moves) == 0 {
		if board.IsInCheck(&b, sideToMove) {
			// The side to move is mated.
			if maximizing {
				return -WinScore
			}
			return WinScore
		}
		return 0 // stalemate
	}

	OrderMoves(&b, moves, depth, s.killers)

	alphaOrig, betaOrig := alpha, beta
	var best float64

	if maximizing {
		best = math.Inf(-1)
		for _, m := range moves {
			next, nextLast := board.Simulate(b, m)
			score := s.Minimax(next, nextLast, depth-1, alpha, beta, false)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				if !m.IsCapture(&b) {
					s.killers.Record(m, depth)
				}
				break
			}
		}
	} else {
		best = math.Inf(1)
		for _, m := range moves {
			next, nextLast := board.Simulate(b, m)
			score := s.Minimax(next, nextLast, depth-1, alpha, beta, true)
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
			if beta <= alpha {
				if !m.IsCapture(&b) {
					s.killers.Record(m, depth)
				}
				break
			}
		}
	}

	if s.tt != nil {
		flag := TTExact
		if best <= alphaOrig {
			flag = TTUpperBound
		} else if best >= betaOrig {
			flag = TTLowerBound
		}
		s.tt.Store(key, depth, best, flag)
	}

	return best
}

// quiescence extends the search through captures only, using the static
// evaluation as a stand-pat floor: the side to move may always decline to
// capture. Positions already good enough to exceed the window are pruned
// immediately. A position with no captures scores exactly its static
// evaluation. depth continues below zero so perspective rotation stays a
// function of plies from the root.
func (s *Search) quiescence(b board.Board, last *board.LastMove, depth int, alpha, beta float64, maximizing bool, qDepth int) float64 {
	s.nodes++

	persp := EffectiveColor(s.rootColor, s.rootDepth, depth, s.params.Mode)
	sideToMove := persp
	if !maximizing {
		sideToMove = persp.Other()
	}

	standPat := Evaluate(&b, persp, s.params, s.weights)

	if maximizing {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		if standPat <= alpha {
			return standPat
		}
		if standPat < beta {
			beta = standPat
		}
	}

	if qDepth == 0 {
		return standPat
	}

	captures := board.GenerateCaptures(&b, sideToMove, last)
	if len(captures) == 0 {
		return standPat
	}

	OrderMoves(&b, captures, depth, nil)

	best := standPat
	if maximizing {
		for _, m := range captures {
			next, nextLast := board.Simulate(b, m)
			score := s.quiescence(next, nextLast, depth-1, alpha, beta, false, qDepth-1)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
	} else {
		for _, m := range captures {
			next, nextLast := board.Simulate(b, m)
			score := s.quiescence(next, nextLast, depth-1, alpha, beta, true, qDepth-1)
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
			if beta <= alpha {
				break
			}
		}
	}

	return best
}
