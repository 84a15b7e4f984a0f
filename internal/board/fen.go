package board

import (
	"fmt"
	"strings"
)

// FEN serializes the board and side to move as a FEN string. Castling
// rights are derived from the Moved flags; the en passant field reflects
// the supplied last move (or "-" when it was not a double pawn push).
func FEN(b *Board, sideToMove Color, last *LastMove) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.At(NewSquare(file, rank))
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := castlingRights(b)
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if last.IsDoublePawnPush() {
		passed := NewSquare(last.To.File(), (last.From.Rank()+last.To.Rank())/2)
		sb.WriteString(passed.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteString(" 0 1")
	return sb.String()
}

func castlingRights(b *Board) string {
	var sb strings.Builder
	unmoved := func(sq Square, pt PieceType, c Color) bool {
		p := b.At(sq)
		return p.Type == pt && p.Color == c && !p.Moved
	}
	if unmoved(E1, King, White) {
		if unmoved(H1, Rook, White) {
			sb.WriteByte('K')
		}
		if unmoved(A1, Rook, White) {
			sb.WriteByte('Q')
		}
	}
	if unmoved(E8, King, Black) {
		if unmoved(H8, Rook, Black) {
			sb.WriteByte('k')
		}
		if unmoved(A8, Rook, Black) {
			sb.WriteByte('q')
		}
	}
	return sb.String()
}

// ParseFEN parses a FEN string into a board, side to move and a synthetic
// last move reconstructed from the en passant field. Halfmove and fullmove
// counters are accepted and ignored; the engine does not track them.
func ParseFEN(fen string) (Board, Color, *LastMove, error) {
	var b Board
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return b, NoColor, nil, fmt.Errorf("invalid FEN: %q", fen)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return b, NoColor, nil, fmt.Errorf("invalid FEN placement: %q", fields[0])
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := PieceFromChar(ch)
			if p.IsEmpty() || file > 7 {
				return b, NoColor, nil, fmt.Errorf("invalid FEN placement: %q", fields[0])
			}
			b[NewSquare(file, rank)] = p
			file++
		}
		if file != 8 {
			return b, NoColor, nil, fmt.Errorf("invalid FEN rank: %q", row)
		}
	}

	var side Color
	switch fields[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return b, NoColor, nil, fmt.Errorf("invalid FEN side: %q", fields[1])
	}

	rights := "-"
	if len(fields) > 2 {
		rights = fields[2]
	}
	applyCastlingRights(&b, rights)

	var last *LastMove
	if len(fields) > 3 && fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			return b, NoColor, nil, fmt.Errorf("invalid FEN en passant: %q", fields[3])
		}
		last = lastMoveFromEnPassant(ep, side)
	}

	return b, side, last, nil
}

// applyCastlingRights marks kings and rooks as moved wherever a right is
// absent, and any king or rook standing off its home square as moved, so
// the Moved flags agree with the FEN rights.
func applyCastlingRights(b *Board, rights string) {
	markMoved := func(sq Square, pt PieceType, c Color) {
		p := b.At(sq)
		if p.Type == pt && p.Color == c {
			p.Moved = true
			b[sq] = p
		}
	}

	if !strings.Contains(rights, "K") {
		markMoved(H1, Rook, White)
	}
	if !strings.Contains(rights, "Q") {
		markMoved(A1, Rook, White)
	}
	if !strings.Contains(rights, "k") {
		markMoved(H8, Rook, Black)
	}
	if !strings.Contains(rights, "q") {
		markMoved(A8, Rook, Black)
	}
	if !strings.ContainsAny(rights, "KQ") {
		markMoved(E1, King, White)
	}
	if !strings.ContainsAny(rights, "kq") {
		markMoved(E8, King, Black)
	}

	// Kings and rooks away from their home squares have necessarily moved.
	for sq := Square(0); sq < 64; sq++ {
		p := b.At(sq)
		switch p.Type {
		case King:
			home := E1
			if p.Color == Black {
				home = E8
			}
			if sq != home {
				p.Moved = true
				b[sq] = p
			}
		case Rook:
			rank := 0
			if p.Color == Black {
				rank = 7
			}
			if sq != NewSquare(0, rank) && sq != NewSquare(7, rank) {
				p.Moved = true
				b[sq] = p
			}
		}
	}
}

// lastMoveFromEnPassant reconstructs the double pawn push implied by an en
// passant target square. sideToMove is the side about to move, so the pawn
// that just pushed belongs to the other side.
func lastMoveFromEnPassant(ep Square, sideToMove Color) *LastMove {
	pawnColor := sideToMove.Other()
	file := ep.File()
	var from, to Square
	if pawnColor == White {
		from = NewSquare(file, 1)
		to = NewSquare(file, 3)
	} else {
		from = NewSquare(file, 6)
		to = NewSquare(file, 4)
	}
	return &LastMove{From: from, To: to, Piece: Piece{Type: Pawn, Color: pawnColor, Moved: true}}
}
