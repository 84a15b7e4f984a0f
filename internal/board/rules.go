package board

// IsInCheck reports whether color's king is attacked. A board without the
// king is not in check; generators tolerate degenerate positions.
func IsInCheck(b *Board, color Color) bool {
	kingSq := b.KingSquare(color)
	if kingSq == NoSquare {
		return false
	}
	return IsSquareAttacked(b, kingSq, color.Other())
}

// IsCheckmate reports whether color is checkmated: in check with no legal
// reply.
func IsCheckmate(b *Board, color Color, last *LastMove) bool {
	if !IsInCheck(b, color) {
		return false
	}
	return len(GenerateLegalMoves(b, color, last)) == 0
}

// IsStalemate reports whether color is stalemated: not in check but without
// a legal move.
func IsStalemate(b *Board, color Color, last *LastMove) bool {
	if IsInCheck(b, color) {
		return false
	}
	return len(GenerateLegalMoves(b, color, last)) == 0
}

// IsInsufficientMaterial reports whether neither side can deliver mate:
// king vs king, king+bishop vs king, or king+knight vs king. Any pawn,
// rook or queen on the board is sufficient material.
func IsInsufficientMaterial(b *Board) bool {
	minors := 0
	for sq := Square(0); sq < 64; sq++ {
		switch b[sq].Type {
		case NoPieceType, King:
		case Bishop, Knight:
			minors++
			if minors > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// IsValidMove reports whether the move is among the legal moves for the
// piece's color on this board.
func IsValidMove(b *Board, m Move, last *LastMove) bool {
	p := b.At(m.From)
	if p.IsEmpty() {
		return false
	}
	for _, legal := range GenerateLegalMoves(b, p.Color, last) {
		if legal == m {
			return true
		}
	}
	return false
}
