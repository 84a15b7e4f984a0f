package board

// Simulate applies a move to a copy of the board and returns the resulting
// position together with the recomputed LastMove record. The input board is
// taken by value and never mutated, so every search node works on an
// immutable snapshot.
//
// Handled as part of application: rook relocation on castling (king moved
// two files), removal of the en-passant-captured pawn (pawn moved diagonally
// onto an empty square), promotion substitution, and Moved-flag updates.
//
// An empty source square is a conservative no-op: the board is returned
// unchanged with a nil last-move. Search nodes only originate from
// previously legal positions, so this path is a guard, not an error.
func Simulate(b Board, m Move) (Board, *LastMove) {
	piece := b.At(m.From)
	if piece.IsEmpty() {
		return b, nil
	}

	// En passant: a pawn landing diagonally on an empty square removes the
	// pawn it passed, which sits on the destination file at the origin rank.
	if piece.Type == Pawn && m.From.File() != m.To.File() && b.IsEmpty(m.To) {
		b[NewSquare(m.To.File(), m.From.Rank())] = Piece{}
	}

	// Castling: the king moves two files; the rook jumps to the crossed
	// square.
	if piece.Type == King && abs(m.To.File()-m.From.File()) == 2 {
		rank := m.From.Rank()
		var rookFrom, rookTo Square
		if m.To.File() > m.From.File() {
			rookFrom = NewSquare(7, rank)
			rookTo = NewSquare(5, rank)
		} else {
			rookFrom = NewSquare(0, rank)
			rookTo = NewSquare(3, rank)
		}
		rook := b.At(rookFrom)
		rook.Moved = true
		b[rookTo] = rook
		b[rookFrom] = Piece{}
	}

	moved := piece
	moved.Moved = true
	if m.IsPromotion() {
		moved.Type = m.Promotion
	}
	b[m.To] = moved
	b[m.From] = Piece{}

	return b, &LastMove{From: m.From, To: m.To, Piece: moved}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
