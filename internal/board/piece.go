package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
// The zero value is NoPieceType so an empty Piece marks an empty square.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the lowercase letter for the piece type ('q' for queen, etc.).
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if int(pt) >= len(chars) {
		return ' '
	}
	return chars[pt]
}

// PieceTypeFromChar converts a promotion letter (q, r, b, n) to a PieceType.
func PieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'q':
		return Queen
	case 'r':
		return Rook
	case 'b':
		return Bishop
	case 'n':
		return Knight
	default:
		return NoPieceType
	}
}

// PointValue is the material value of each piece type in points.
// The king carries no material value; mate is scored by the search instead.
var PointValue = [7]float64{0, 1, 3, 3, 5, 9, 0}

// Piece is an occupant of a board square. The Moved flag is set the first
// time a piece moves and gates castling legality for kings and rooks;
// it is irrelevant for other pieces. The zero Piece is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
	Moved bool
}

// NewPiece creates an unmoved piece.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece{Type: pt, Color: c}
}

// IsEmpty reports whether this Piece marks an empty square.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Value returns the material value of the piece in points.
func (p Piece) Value() float64 {
	return PointValue[p.Type]
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black, space for empty.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	chars := " PNBRQK"
	ch := chars[p.Type]
	if p.Color == Black {
		ch += 'a' - 'A'
	}
	return string(ch)
}

// PieceFromChar converts a FEN character to a Piece (unmoved).
func PieceFromChar(c byte) Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return NewPiece(Pawn, color)
	case 'N':
		return NewPiece(Knight, color)
	case 'B':
		return NewPiece(Bishop, color)
	case 'R':
		return NewPiece(Rook, color)
	case 'Q':
		return NewPiece(Queen, color)
	case 'K':
		return NewPiece(King, color)
	default:
		return Piece{}
	}
}
