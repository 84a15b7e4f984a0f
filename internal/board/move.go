package board

import "fmt"

// Move is an immutable move value: origin, destination and an optional
// promotion piece type. Promotion is NoPieceType for everything except pawn
// moves reaching the last rank; the generator enumerates the four promotion
// variants (q, r, b, n) as separate moves.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// NoMove is the zero move, used as a "no move" sentinel. It is never a
// legal move because From == To.
var NoMove = Move{}

// NewMove creates a non-promoting move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Promotion: promo}
}

// IsPromotion reports whether this move carries a promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// IsCapture reports whether the move captures on the given board. Diagonal
// pawn moves onto an empty square are en passant captures.
func (m Move) IsCapture(b *Board) bool {
	if !b.IsEmpty(m.To) {
		return true
	}
	p := b.At(m.From)
	return p.Type == Pawn && m.From.File() != m.To.File()
}

// String returns the long algebraic form of the move ("e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove parses a long algebraic move string ("e2e4", "e7e8q").
func ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		promo := PieceTypeFromChar(s[4])
		if promo == NoPieceType {
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	return NewMove(from, to), nil
}

// LastMove records the immediately preceding move with enough detail to
// validate en passant on the following ply. It is recomputed by Simulate
// for every applied move and never mutated. A nil *LastMove means there is
// no previous move (or the previous move is unknown).
type LastMove struct {
	From  Square
	To    Square
	Piece Piece
}

// IsDoublePawnPush reports whether the recorded move was a two-square pawn
// advance, the only move that enables en passant.
func (lm *LastMove) IsDoublePawnPush() bool {
	if lm == nil || lm.Piece.Type != Pawn {
		return false
	}
	diff := lm.From.Rank() - lm.To.Rank()
	return diff == 2 || diff == -2
}
