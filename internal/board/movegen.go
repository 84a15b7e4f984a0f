package board

// Direction offsets as (file, rank) deltas.
var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookDirs      = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirs    = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
)

// promotionTypes lists the four promotion variants in the order the
// generator enumerates them.
var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenerateLegalMoves enumerates every legal move for color: all
// pseudo-legal moves minus those that leave color's own king in check.
// Legality is established by simulating each candidate and testing attack
// on the king square. Terminal and degenerate boards yield an empty list.
func GenerateLegalMoves(b *Board, color Color, last *LastMove) []Move {
	pseudo := pseudoMoves(b, color, last)
	legal := pseudo[:0]
	for _, m := range pseudo {
		next, _ := Simulate(*b, m)
		if !IsInCheck(&next, color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// GenerateCaptures enumerates the legal capturing moves for color. Used by
// quiescence search, which extends through captures only.
func GenerateCaptures(b *Board, color Color, last *LastMove) []Move {
	moves := GenerateLegalMoves(b, color, last)
	captures := moves[:0]
	for _, m := range moves {
		if m.IsCapture(b) {
			captures = append(captures, m)
		}
	}
	return captures
}

// pseudoMoves enumerates moves without checking for self-check.
func pseudoMoves(b *Board, color Color, last *LastMove) []Move {
	moves := make([]Move, 0, 48)
	for sq := Square(0); sq < 64; sq++ {
		p := b[sq]
		if p.IsEmpty() || p.Color != color {
			continue
		}
		switch p.Type {
		case Pawn:
			moves = appendPawnMoves(moves, b, sq, color, last)
		case Knight:
			moves = appendStepMoves(moves, b, sq, color, knightOffsets[:])
		case Bishop:
			moves = appendSliderMoves(moves, b, sq, color, bishopDirs[:])
		case Rook:
			moves = appendSliderMoves(moves, b, sq, color, rookDirs[:])
		case Queen:
			moves = appendSliderMoves(moves, b, sq, color, rookDirs[:])
			moves = appendSliderMoves(moves, b, sq, color, bishopDirs[:])
		case King:
			moves = appendStepMoves(moves, b, sq, color, kingOffsets[:])
			moves = appendCastlingMoves(moves, b, sq, color)
		}
	}
	return moves
}

// appendPawnTargets expands a pawn move into its four promotion variants
// when the destination is the farthest rank.
func appendPawnTargets(moves []Move, from, to Square, color Color) []Move {
	lastRank := 7
	if color == Black {
		lastRank = 0
	}
	if to.Rank() == lastRank {
		for _, promo := range promotionTypes {
			moves = append(moves, NewPromotion(from, to, promo))
		}
		return moves
	}
	return append(moves, NewMove(from, to))
}

func appendPawnMoves(moves []Move, b *Board, sq Square, color Color, last *LastMove) []Move {
	dir := 1
	startRank := 1
	if color == Black {
		dir = -1
		startRank = 6
	}

	file := sq.File()
	rank := sq.Rank()

	// Single and double push.
	if rank+dir >= 0 && rank+dir <= 7 {
		one := NewSquare(file, rank+dir)
		if b.IsEmpty(one) {
			moves = appendPawnTargets(moves, sq, one, color)
			if rank == startRank {
				two := NewSquare(file, rank+2*dir)
				if b.IsEmpty(two) {
					moves = append(moves, NewMove(sq, two))
				}
			}
		}
	}

	// Diagonal captures and en passant.
	for _, df := range [2]int{-1, 1} {
		tf := file + df
		tr := rank + dir
		if tf < 0 || tf > 7 || tr < 0 || tr > 7 {
			continue
		}
		to := NewSquare(tf, tr)
		target := b.At(to)
		if !target.IsEmpty() && target.Color != color {
			moves = appendPawnTargets(moves, sq, to, color)
			continue
		}
		if target.IsEmpty() && enPassantTarget(b, sq, to, color, last) {
			moves = append(moves, NewMove(sq, to))
		}
	}

	return moves
}

// enPassantTarget reports whether moving a pawn from sq to the empty square
// to captures en passant: the last move must have been an adjacent enemy
// pawn's double push whose passed-over square is to.
func enPassantTarget(b *Board, sq, to Square, color Color, last *LastMove) bool {
	if !last.IsDoublePawnPush() || last.Piece.Color == color {
		return false
	}
	// Captured pawn sits beside us on the same rank, on the file we move to.
	if last.To.Rank() != sq.Rank() || last.To.File() != to.File() {
		return false
	}
	// The capture lands on the square the enemy pawn passed over.
	passedRank := (last.From.Rank() + last.To.Rank()) / 2
	return to.Rank() == passedRank
}

func appendStepMoves(moves []Move, b *Board, sq Square, color Color, offsets [][2]int) []Move {
	file := sq.File()
	rank := sq.Rank()
	for _, off := range offsets {
		tf := file + off[0]
		tr := rank + off[1]
		if tf < 0 || tf > 7 || tr < 0 || tr > 7 {
			continue
		}
		to := NewSquare(tf, tr)
		target := b.At(to)
		if target.IsEmpty() || target.Color != color {
			moves = append(moves, NewMove(sq, to))
		}
	}
	return moves
}

func appendSliderMoves(moves []Move, b *Board, sq Square, color Color, dirs [][2]int) []Move {
	file := sq.File()
	rank := sq.Rank()
	for _, dir := range dirs {
		tf, tr := file+dir[0], rank+dir[1]
		for tf >= 0 && tf <= 7 && tr >= 0 && tr <= 7 {
			to := NewSquare(tf, tr)
			target := b.At(to)
			if target.IsEmpty() {
				moves = append(moves, NewMove(sq, to))
			} else {
				if target.Color != color {
					moves = append(moves, NewMove(sq, to))
				}
				break
			}
			tf += dir[0]
			tr += dir[1]
		}
	}
	return moves
}

// appendCastlingMoves adds kingside and queenside castling when legal:
// king and rook unmoved, the lane between them empty, and the king's
// current, crossed and destination squares all unattacked.
func appendCastlingMoves(moves []Move, b *Board, sq Square, color Color) []Move {
	king := b.At(sq)
	if king.Moved {
		return moves
	}
	rank := sq.Rank()
	enemy := color.Other()

	if IsSquareAttacked(b, sq, enemy) {
		return moves
	}

	// Kingside: rook on the h-file, f and g empty, king crosses f to g.
	rookSq := NewSquare(7, rank)
	rook := b.At(rookSq)
	if rook.Type == Rook && rook.Color == color && !rook.Moved &&
		b.IsEmpty(NewSquare(5, rank)) && b.IsEmpty(NewSquare(6, rank)) &&
		!IsSquareAttacked(b, NewSquare(5, rank), enemy) &&
		!IsSquareAttacked(b, NewSquare(6, rank), enemy) {
		moves = append(moves, NewMove(sq, NewSquare(6, rank)))
	}

	// Queenside: rook on the a-file, b, c and d empty, king crosses d to c.
	rookSq = NewSquare(0, rank)
	rook = b.At(rookSq)
	if rook.Type == Rook && rook.Color == color && !rook.Moved &&
		b.IsEmpty(NewSquare(1, rank)) && b.IsEmpty(NewSquare(2, rank)) &&
		b.IsEmpty(NewSquare(3, rank)) &&
		!IsSquareAttacked(b, NewSquare(3, rank), enemy) &&
		!IsSquareAttacked(b, NewSquare(2, rank), enemy) {
		moves = append(moves, NewMove(sq, NewSquare(2, rank)))
	}

	return moves
}

// IsSquareAttacked reports whether sq is attacked by any piece of color by.
func IsSquareAttacked(b *Board, sq Square, by Color) bool {
	file := sq.File()
	rank := sq.Rank()

	// Pawn attacks: a pawn of color by attacks sq from one rank behind its
	// own advance direction.
	pawnRank := rank - 1
	if by == Black {
		pawnRank = rank + 1
	}
	if pawnRank >= 0 && pawnRank <= 7 {
		for _, df := range [2]int{-1, 1} {
			tf := file + df
			if tf < 0 || tf > 7 {
				continue
			}
			p := b.At(NewSquare(tf, pawnRank))
			if p.Type == Pawn && p.Color == by {
				return true
			}
		}
	}

	// Knight attacks.
	for _, off := range knightOffsets {
		tf, tr := file+off[0], rank+off[1]
		if tf < 0 || tf > 7 || tr < 0 || tr > 7 {
			continue
		}
		p := b.At(NewSquare(tf, tr))
		if p.Type == Knight && p.Color == by {
			return true
		}
	}

	// King attacks (adjacent enemy king).
	for _, off := range kingOffsets {
		tf, tr := file+off[0], rank+off[1]
		if tf < 0 || tf > 7 || tr < 0 || tr > 7 {
			continue
		}
		p := b.At(NewSquare(tf, tr))
		if p.Type == King && p.Color == by {
			return true
		}
	}

	// Rook/queen rays.
	if slidingAttack(b, file, rank, by, rookDirs[:], Rook) {
		return true
	}
	// Bishop/queen rays.
	return slidingAttack(b, file, rank, by, bishopDirs[:], Bishop)
}

func slidingAttack(b *Board, file, rank int, by Color, dirs [][2]int, slider PieceType) bool {
	for _, dir := range dirs {
		tf, tr := file+dir[0], rank+dir[1]
		for tf >= 0 && tf <= 7 && tr >= 0 && tr <= 7 {
			p := b.At(NewSquare(tf, tr))
			if !p.IsEmpty() {
				if p.Color == by && (p.Type == slider || p.Type == Queen) {
					return true
				}
				break
			}
			tf += dir[0]
			tr += dir[1]
		}
	}
	return false
}
