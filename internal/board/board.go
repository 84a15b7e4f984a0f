package board

import "strings"

// Board is a 64-slot mailbox of pieces, indexed by Square. It is a value
// type: assignment copies the whole position, which is what Simulate relies
// on to keep every search node immutable. The board carries no state beyond
// piece placement and per-piece Moved flags.
type Board [64]Piece

// At returns the piece on the given square.
func (b *Board) At(sq Square) Piece {
	return b[sq]
}

// IsEmpty reports whether the given square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b[sq].IsEmpty()
}

// KingSquare returns the square of the given color's king, or NoSquare if
// the king is absent (degenerate boards are tolerated, not rejected).
func (b *Board) KingSquare(c Color) Square {
	for sq := Square(0); sq < 64; sq++ {
		p := b[sq]
		if p.Type == King && p.Color == c {
			return sq
		}
	}
	return NoSquare
}

// MaterialPoints returns the total non-king material for one side in points.
func (b *Board) MaterialPoints(c Color) float64 {
	var total float64
	for sq := Square(0); sq < 64; sq++ {
		p := b[sq]
		if !p.IsEmpty() && p.Color == c {
			total += p.Value()
		}
	}
	return total
}

// backRank holds the piece order of the first and eighth ranks.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Starting returns the standard chess starting position.
func Starting() Board {
	var b Board
	for file := 0; file < 8; file++ {
		b[NewSquare(file, 0)] = NewPiece(backRank[file], White)
		b[NewSquare(file, 1)] = NewPiece(Pawn, White)
		b[NewSquare(file, 6)] = NewPiece(Pawn, Black)
		b[NewSquare(file, 7)] = NewPiece(backRank[file], Black)
	}
	return b
}

// String renders the board from White's perspective, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			p := b[NewSquare(file, rank)]
			if p.IsEmpty() {
				sb.WriteByte('.')
			} else {
				sb.WriteString(p.String())
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
