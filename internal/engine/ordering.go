package engine

import (
	"sort"

	"github.com/hexaflip/chessmind/internal/board"
)

// Move ordering bonuses. Captures dominate via MVV-LVA (up to 89 for
// pawn-takes-queen); promotions and killers slot in below winning captures
// but above quiet moves.
const (
	mvvLvaVictimFactor = 10.0
	promotionBonus     = 80.0
	killerBonus        = 5.0
	centerBonusScale   = 0.1
)

// maxKillersPerDepth caps the killer list at each depth.
const maxKillersPerDepth = 2

// KillerTable remembers quiet moves that caused a beta cutoff at each
// search depth. It is owned by a single search invocation and cleared at
// the start of every top-level search; it is never shared across
// concurrent searches.
type KillerTable struct {
	moves map[int][]board.Move
}

// NewKillerTable creates an empty killer table.
func NewKillerTable() *KillerTable {
	return &KillerTable{moves: make(map[int][]board.Move)}
}

// Record inserts a quiet cutoff move at the front of the depth's list,
// capping the list at two entries and never duplicating a stored move.
func (kt *KillerTable) Record(m board.Move, depth int) {
	current := kt.moves[depth]
	for _, k := range current {
		if k == m {
			return
		}
	}
	updated := append([]board.Move{m}, current...)
	if len(updated) > maxKillersPerDepth {
		updated = updated[:maxKillersPerDepth]
	}
	kt.moves[depth] = updated
}

// Contains reports whether m is a stored killer at the given depth.
func (kt *KillerTable) Contains(m board.Move, depth int) bool {
	for _, k := range kt.moves[depth] {
		if k == m {
			return true
		}
	}
	return false
}

// Clear drops all stored killers.
func (kt *KillerTable) Clear() {
	kt.moves = make(map[int][]board.Move)
}

// OrderMoves sorts the candidate moves descending by heuristic score to
// maximize alpha-beta pruning:
//
//   - captures score 10×victim − attacker (MVV-LVA),
//   - quiet moves matching a killer at this depth get a flat bonus,
//   - promotions get a flat bonus,
//   - every move gets a small bonus for landing near the center.
//
// The input slice is sorted in place and returned. No stability beyond the
// total order by score is guaranteed.
func OrderMoves(b *board.Board, moves []board.Move, depth int, killers *KillerTable) []board.Move {
	scores := make([]float64, len(moves))
	for i, m := range moves {
		scores[i] = moveScore(b, m, depth, killers)
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return scores[i] > scores[j]
	})
	return moves
}

func moveScore(b *board.Board, m board.Move, depth int, killers *KillerTable) float64 {
	var score float64

	if m.IsCapture(b) {
		victim := b.At(m.To)
		if victim.IsEmpty() {
			// En passant: the victim is always a pawn.
			victim = board.Piece{Type: board.Pawn}
		}
		attacker := b.At(m.From)
		score += mvvLvaVictimFactor*victim.Value() - attacker.Value()
	} else if killers != nil && killers.Contains(m, depth) {
		score += killerBonus
	}

	if m.IsPromotion() {
		score += promotionBonus
	}

	score += centerBonusScale * float64(3-m.To.CenterDistance())
	return score
}
