package model

// Color is the side a piece belongs to, doubling as the sign of its code.
type Color int

const (
	White Color = 1
	Black Color = -1
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	return -c
}

// String implements fmt.Stringer for logging.
func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Kind is the type of a piece, independent of color.
type Kind int

const (
	Pawn Kind = iota + 1
	Rook
	Knight
	Bishop
	Queen
	King
)

// Piece is a signed piece code: magnitude is the Kind, sign is the Color,
// zero means an empty square. The whole engine relies on this algebra:
// piece*color > 0 tests ownership, and the magnitude dispatches move rules.
type Piece int

// NewPiece builds the signed code for a colored piece.
func NewPiece(color Color, kind Kind) Piece {
	return Piece(int(color) * int(kind))
}

// Kind returns the piece type, or 0 for an empty square.
func (p Piece) Kind() Kind {
	if p < 0 {
		return Kind(-p)
	}
	return Kind(p)
}

// Color returns the owning side, or 0 for an empty square.
func (p Piece) Color() Color {
	switch {
	case p > 0:
		return White
	case p < 0:
		return Black
	default:
		return 0
	}
}

// IsEmpty reports whether the code denotes an empty square.
func (p Piece) IsEmpty() bool {
	return p == 0
}

// OwnedBy reports whether the piece belongs to the given side.
func (p Piece) OwnedBy(color Color) bool {
	return int(p)*int(color) > 0
}
