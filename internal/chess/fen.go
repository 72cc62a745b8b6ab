package chess

import (
	"fmt"
	"strings"

	"github.com/eslteam/chesstutor/internal/model"
)

// fenPieces maps placement letters to piece codes. Uppercase is White,
// lowercase is Black.
var fenPieces = map[rune]model.Piece{
	'P': model.NewPiece(model.White, model.Pawn),
	'R': model.NewPiece(model.White, model.Rook),
	'N': model.NewPiece(model.White, model.Knight),
	'B': model.NewPiece(model.White, model.Bishop),
	'Q': model.NewPiece(model.White, model.Queen),
	'K': model.NewPiece(model.White, model.King),
	'p': model.NewPiece(model.Black, model.Pawn),
	'r': model.NewPiece(model.Black, model.Rook),
	'n': model.NewPiece(model.Black, model.Knight),
	'b': model.NewPiece(model.Black, model.Bishop),
	'q': model.NewPiece(model.Black, model.Queen),
	'k': model.NewPiece(model.Black, model.King),
}

// ParsePosition reads the first two fields of a FEN string: piece
// placement and side to move. Castling rights, en passant targets, and the
// move clocks are ignored since the movement rules do not model them.
//
// The side-to-move field selects Black only for "b"; anything else falls
// back to White.
func ParsePosition(position string) (model.Board, model.Color, error) {
	fields := strings.Fields(position)
	if len(fields) < 2 {
		return model.Board{}, 0, fmt.Errorf("%w: %q needs placement and side-to-move fields", model.ErrInvalidPosition, position)
	}

	var board model.Board
	row, col := 0, 0
	for _, c := range fields[0] {
		switch {
		case c == '/':
			row++
			col = 0
		case c >= '1' && c <= '8':
			col += int(c - '0')
		default:
			piece, ok := fenPieces[c]
			if !ok {
				return model.Board{}, 0, fmt.Errorf("%w: unknown piece letter %q", model.ErrInvalidPosition, c)
			}
			if row > 7 || col > 7 {
				return model.Board{}, 0, fmt.Errorf("%w: placement overflows the board at row %d, col %d", model.ErrInvalidPosition, row, col)
			}
			board[row][col] = piece
			col++
		}
	}

	toMove := model.White
	if fields[1] == "b" {
		toMove = model.Black
	}
	return board, toMove, nil
}
