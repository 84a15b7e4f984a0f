package engine

import (
	"math"

	"github.com/hexaflip/chessmind/internal/board"
)

// WinScore is the saturating score for a decided game: checkmate in the
// search, or a reached points target in the evaluator.
const WinScore = 999999.0

// Weights holds the evaluator's tuning constants. The multiplicative
// damping factors and bonus sizes are heuristic values without a stated
// derivation, so they are configurable rather than hard constants.
type Weights struct {
	// RotationDamp scales the whole score toward zero in the rotating
	// mode, where aggression cuts both ways.
	RotationDamp float64
	// RotationImbalance penalizes material imbalance per point of
	// difference in the rotating mode: the evaluating side inherits
	// either army on a future turn.
	RotationImbalance float64
	// RandomDamp scales extreme scores in the random-color mode.
	RandomDamp float64
	// RandomCenter rewards each centralized piece in the random-color
	// mode, scaled by closeness to the center.
	RandomCenter float64
	// NearTarget grades the bonus/penalty per point of progress once a
	// player is within one queen capture of the points target.
	NearTarget float64
	// LeadKingSafety rewards each pawn sheltering the king when the
	// acting player leads on points.
	LeadKingSafety float64
	// TrailActivity rewards each developed piece when the acting player
	// trails on points.
	TrailActivity float64
}

// DefaultWeights returns the stock tuning values.
func DefaultWeights() Weights {
	return Weights{
		RotationDamp:      0.85,
		RotationImbalance: 0.10,
		RandomDamp:        0.95,
		RandomCenter:      0.05,
		NearTarget:        0.50,
		LeadKingSafety:    0.15,
		TrailActivity:     0.10,
	}
}

// nearTargetMargin is one queen capture worth of points: within this
// distance of the target the graduated adjustments kick in.
const nearTargetMargin = 9.0

// Evaluate scores the position from perspective's point of view; positive
// favors perspective. The layers apply in a fixed order so evaluation is
// deterministic for the same inputs:
//
//  1. material plus piece-square bonuses, signed by color,
//  2. points-target saturation and graduated near-target adjustments,
//  3. rotating-mode damping and imbalance penalty,
//  4. random-mode center reward and extreme-score damping,
//  5. leading/trailing king-safety versus activity adjustment.
func Evaluate(b *board.Board, perspective board.Color, params Params, w Weights) float64 {
	if sat, ok := pointsSaturation(params.Points); ok {
		return sat
	}

	score := materialAndPosition(b, perspective)
	score += nearTargetAdjustment(params.Points, w)

	switch params.Mode {
	case ModeRotating:
		score *= w.RotationDamp
		imbalance := math.Abs(b.MaterialPoints(perspective) - b.MaterialPoints(perspective.Other()))
		score -= w.RotationImbalance * imbalance
	case ModeRandom:
		score += centerOccupation(b, perspective) * w.RandomCenter
		score *= w.RandomDamp
	}

	score += leadTrailAdjustment(b, perspective, params.Points, w)
	return score
}

// materialAndPosition is the base score: material value plus piece-square
// bonus per piece, added for perspective's pieces and subtracted for the
// opponent's. The king table switches once a side's non-king material
// drops to the endgame threshold.
func materialAndPosition(b *board.Board, perspective board.Color) float64 {
	endgame := b.MaterialPoints(board.White) <= endgameMaterial ||
		b.MaterialPoints(board.Black) <= endgameMaterial

	var score float64
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.At(sq)
		if p.IsEmpty() {
			continue
		}
		v := p.Value() + pstBonus(p, sq, endgame)
		if p.Color == perspective {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// pointsSaturation returns the saturating win/loss score when any player
// has already reached the target.
func pointsSaturation(ps *PointsState) (float64, bool) {
	if !ps.Active() {
		return 0, false
	}
	if ps.Scores[ps.Acting] >= ps.Target {
		return WinScore, true
	}
	for i, s := range ps.Scores {
		if i != ps.Acting && s >= ps.Target {
			return -WinScore, true
		}
	}
	return 0, false
}

// nearTargetAdjustment grades the score when a player is within one queen
// capture of the target: captures become more attractive when the acting
// player is close, and riskier when an opponent is.
func nearTargetAdjustment(ps *PointsState, w Weights) float64 {
	if !ps.Active() {
		return 0
	}

	var adj float64
	if gap := ps.Target - ps.Scores[ps.Acting]; gap > 0 && gap <= nearTargetMargin {
		adj += w.NearTarget * (nearTargetMargin - gap + 1)
	}
	if gap := ps.Target - ps.OpponentBest(); gap > 0 && gap <= nearTargetMargin {
		adj -= w.NearTarget * (nearTargetMargin - gap + 1)
	}
	return adj
}

// centerOccupation sums closeness-to-center over perspective's pieces.
func centerOccupation(b *board.Board, perspective board.Color) float64 {
	var total float64
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.At(sq)
		if !p.IsEmpty() && p.Color == perspective {
			total += float64(3 - sq.CenterDistance())
		}
	}
	return total
}

// leadTrailAdjustment rewards king safety when the acting player leads on
// points and piece activity when trailing.
func leadTrailAdjustment(b *board.Board, perspective board.Color, ps *PointsState, w Weights) float64 {
	if !ps.Active() {
		return 0
	}

	diff := ps.Scores[ps.Acting] - ps.OpponentBest()
	switch {
	case diff > 0:
		return w.LeadKingSafety * kingShelter(b, perspective)
	case diff < 0:
		return w.TrailActivity * developedPieces(b, perspective)
	default:
		return 0
	}
}

// kingShelter counts friendly pawns on the three files around the king,
// one rank ahead of it.
func kingShelter(b *board.Board, c board.Color) float64 {
	kingSq := b.KingSquare(c)
	if kingSq == board.NoSquare {
		return 0
	}

	dir := 1
	if c == board.Black {
		dir = -1
	}
	rank := kingSq.Rank() + dir
	if rank < 0 || rank > 7 {
		return 0
	}

	var pawns float64
	for df := -1; df <= 1; df++ {
		file := kingSq.File() + df
		if file < 0 || file > 7 {
			continue
		}
		p := b.At(board.NewSquare(file, rank))
		if p.Type == board.Pawn && p.Color == c {
			pawns++
		}
	}
	return pawns
}

// developedPieces counts knights, bishops, rooks and queens off their own
// back rank.
func developedPieces(b *board.Board, c board.Color) float64 {
	backRank := 0
	if c == board.Black {
		backRank = 7
	}

	var count float64
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.At(sq)
		if p.IsEmpty() || p.Color != c {
			continue
		}
		switch p.Type {
		case board.Knight, board.Bishop, board.Rook, board.Queen:
			if sq.Rank() != backRank {
				count++
			}
		}
	}
	return count
}
