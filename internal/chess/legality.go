package chess

import (
	"github.com/eslteam/chesstutor/internal/model"
)

// Per-piece legality predicates. These are pure functions of the board and
// the (from, to) pair: no side effects, no turn or friendly-fire checks.
// The move dispatcher in engine.go has already established that the piece
// belongs to the side to move and that the destination is not friendly.

// isLegalMove dispatches on the piece's kind.
func isLegalMove(b *model.Board, piece model.Piece, from, to model.Square) bool {
	switch piece.Kind() {
	case model.King:
		return isLegalKingMove(from, to)
	case model.Queen:
		return isLegalQueenMove(b, from, to)
	case model.Bishop:
		return isLegalBishopMove(b, from, to)
	case model.Knight:
		return isLegalKnightMove(from, to)
	case model.Rook:
		return isLegalRookMove(b, from, to)
	case model.Pawn:
		return isLegalPawnMove(b, piece, from, to)
	default:
		return false
	}
}

// isLegalKingMove accepts the 8 squares at Chebyshev distance 1.
func isLegalKingMove(from, to model.Square) bool {
	rowDelta := abs(to.Row - from.Row)
	colDelta := abs(to.Col - from.Col)
	if rowDelta == 0 && colDelta == 0 {
		return false
	}
	return rowDelta <= 1 && colDelta <= 1
}

// isLegalQueenMove accepts any legal rook or bishop move.
func isLegalQueenMove(b *model.Board, from, to model.Square) bool {
	return isLegalBishopMove(b, from, to) || isLegalRookMove(b, from, to)
}

// isLegalBishopMove accepts clear diagonal slides.
func isLegalBishopMove(b *model.Board, from, to model.Square) bool {
	rowDelta := to.Row - from.Row
	colDelta := to.Col - from.Col
	if abs(rowDelta) != abs(colDelta) || rowDelta == 0 {
		return false
	}
	return !isPieceInterrupting(b, sign(rowDelta), sign(colDelta), from, to)
}

// isLegalRookMove accepts clear horizontal or vertical slides.
func isLegalRookMove(b *model.Board, from, to model.Square) bool {
	rowDelta := to.Row - from.Row
	colDelta := to.Col - from.Col
	if (rowDelta == 0) == (colDelta == 0) {
		return false
	}
	return !isPieceInterrupting(b, sign(rowDelta), sign(colDelta), from, to)
}

// knight offsets: the 8 canonical L-shaped jumps.
var knightOffsets = [8][2]int{
	{-2, 1}, {-2, -1}, {-1, 2}, {-1, -2},
	{1, -2}, {1, 2}, {2, 1}, {2, -1},
}

// isLegalKnightMove accepts the L-shaped jumps; knights ignore blockers.
func isLegalKnightMove(from, to model.Square) bool {
	for _, off := range knightOffsets {
		if from.Row+off[0] == to.Row && from.Col+off[1] == to.Col {
			return true
		}
	}
	return false
}

// isLegalPawnMove validates forward pushes, the two-square leap from the
// home rank, and diagonal captures. Direction comes from the pawn's own
// sign: White moves toward row 0, Black toward row 7.
//
// A one-square straight push does not require the destination to be empty;
// the dispatcher's friendly-fire check blocks own pieces but a straight
// push onto an enemy piece is accepted. Known rules gap, kept on purpose.
func isLegalPawnMove(b *model.Board, piece model.Piece, from, to model.Square) bool {
	rowDelta := to.Row - from.Row
	colDelta := to.Col - from.Col
	dir := int(piece.Color())

	// Backward moves are never legal.
	if rowDelta*dir > 0 {
		return false
	}

	switch {
	case abs(colDelta) == 1 && rowDelta*dir == -1:
		// Diagonal step: only legal as a capture of an enemy piece.
		target := b.At(to)
		return !target.IsEmpty() && target.OwnedBy(piece.Color().Opponent())

	case colDelta == 0 && abs(rowDelta) == 2:
		// Two-square leap, only from the home rank with a clear path.
		if (piece.Color() == model.White && from.Row != 6) ||
			(piece.Color() == model.Black && from.Row != 1) {
			return false
		}
		return !isPieceInterrupting(b, -dir, 0, from, to)

	case colDelta == 0 && abs(rowDelta) == 1:
		return true

	default:
		return false
	}
}

// isPieceInterrupting walks from one step past from toward to along the
// given unit offsets, reporting true if any intermediate square is
// occupied. The destination itself is never checked; its occupancy is the
// caller's concern.
func isPieceInterrupting(b *model.Board, rowStep, colStep int, from, to model.Square) bool {
	row := from.Row + rowStep
	col := from.Col + colStep
	for row != to.Row || col != to.Col {
		if b[row][col] != 0 {
			return true
		}
		row += rowStep
		col += colStep
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
