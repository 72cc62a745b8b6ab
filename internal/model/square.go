package model

import (
	"fmt"
	"unicode"
)

// Square identifies a cell on the chessboard.
// Row 0 is rank 8 (the top, where Black starts); col 0 is file a.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewSquare creates a Square from raw indices, failing if either is out of range.
func NewSquare(row, col int) (Square, error) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return Square{}, fmt.Errorf("%w: row %d, col %d", ErrInvalidSquare, row, col)
	}
	return Square{Row: row, Col: col}, nil
}

// ParseSquare creates a Square from two-character algebraic notation,
// file letter a-h (case-insensitive) followed by rank digit 1-8.
func ParseSquare(notation string) (Square, error) {
	if len(notation) != 2 {
		return Square{}, fmt.Errorf("%w: %q must be 2 characters (e.g. e4)", ErrInvalidSquare, notation)
	}
	file := unicode.ToLower(rune(notation[0]))
	rank := rune(notation[1])
	if file < 'a' || file > 'h' {
		return Square{}, fmt.Errorf("%w: %q file must be a-h", ErrInvalidSquare, notation)
	}
	if rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: %q rank must be 1-8", ErrInvalidSquare, notation)
	}
	return Square{
		Row: 8 - int(rank-'0'),
		Col: int(file - 'a'),
	}, nil
}

// Algebraic returns the square in two-character algebraic notation.
func (s Square) Algebraic() string {
	return string([]byte{byte('a' + s.Col), byte('0' + 8 - s.Row)})
}

// String implements fmt.Stringer for logging.
func (s Square) String() string {
	return s.Algebraic()
}
