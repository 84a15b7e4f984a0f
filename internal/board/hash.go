package board

import "github.com/cespare/xxhash/v2"

// Hash returns the position key used by the transposition table: an xxhash
// digest over every occupied square's coordinate, piece type, color and
// Moved flag, plus the side to move. Including the Moved flag keeps
// positions that differ only in castling rights from colliding.
func Hash(b *Board, sideToMove Color) uint64 {
	var d xxhash.Digest
	d.Reset()

	var buf [4]byte
	for sq := Square(0); sq < 64; sq++ {
		p := b[sq]
		if p.IsEmpty() {
			continue
		}
		buf[0] = byte(sq)
		buf[1] = byte(p.Type)
		buf[2] = byte(p.Color)
		buf[3] = 0
		if p.Moved {
			buf[3] = 1
		}
		d.Write(buf[:])
	}

	d.Write([]byte{byte(sideToMove)})
	return d.Sum64()
}
