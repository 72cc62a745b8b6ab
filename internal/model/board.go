package model

// Board is an 8x8 matrix of piece codes. Row 0 holds Black's back rank,
// row 7 White's, matching Square's orientation. It is a value type:
// assignment copies the whole grid, so snapshots never alias engine state.
type Board [8][8]Piece

// At returns the piece at the given square, 0 if empty.
func (b Board) At(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

// Put writes a piece code at the given square, overwriting any occupant.
// Setup-level operation; gameplay mutation goes through the engine.
func (b *Board) Put(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// IsEmpty reports whether the given square holds no piece.
func (b Board) IsEmpty(sq Square) bool {
	return b[sq.Row][sq.Col] == 0
}

// DefaultBoard returns the standard FIDE starting position,
// Black across rows 0-1 and White across rows 6-7.
func DefaultBoard() Board {
	back := [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

	var b Board
	for col := 0; col < 8; col++ {
		b[0][col] = NewPiece(Black, back[col])
		b[1][col] = NewPiece(Black, Pawn)
		b[6][col] = NewPiece(White, Pawn)
		b[7][col] = NewPiece(White, back[col])
	}
	return b
}
