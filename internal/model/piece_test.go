package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PieceSuite struct {
	suite.Suite
}

func TestPieceSuite(t *testing.T) {
	suite.Run(t, new(PieceSuite))
}

func (s *PieceSuite) TestSignedCodes() {
	s.Equal(Piece(5), NewPiece(White, Queen))
	s.Equal(Piece(-5), NewPiece(Black, Queen))
	s.Equal(Piece(1), NewPiece(White, Pawn))
	s.Equal(Piece(-6), NewPiece(Black, King))
}

func (s *PieceSuite) TestKindAndColor() {
	p := NewPiece(Black, Knight)
	s.Equal(Knight, p.Kind())
	s.Equal(Black, p.Color())
	s.False(p.IsEmpty())

	var empty Piece
	s.True(empty.IsEmpty())
	s.Equal(Kind(0), empty.Kind())
	s.Equal(Color(0), empty.Color())
}

func (s *PieceSuite) TestOwnership() {
	p := NewPiece(White, Rook)
	s.True(p.OwnedBy(White))
	s.False(p.OwnedBy(Black))

	var empty Piece
	s.False(empty.OwnedBy(White))
	s.False(empty.OwnedBy(Black))
}

func (s *PieceSuite) TestOpponent() {
	s.Equal(Black, White.Opponent())
	s.Equal(White, Black.Opponent())
}

func (s *PieceSuite) TestBoardAccessorsOnSnapshot() {
	sq, err := ParseSquare("e1")
	s.Require().NoError(err)

	// At and IsEmpty must work directly on a returned snapshot, not just
	// on an addressable variable.
	s.Equal(NewPiece(White, King), DefaultBoard().At(sq))
	s.False(DefaultBoard().IsEmpty(sq))

	mid, err := ParseSquare("e4")
	s.Require().NoError(err)
	s.True(DefaultBoard().IsEmpty(mid))
}

func (s *PieceSuite) TestDefaultBoard() {
	b := DefaultBoard()

	s.Equal(NewPiece(Black, Rook), b[0][0])
	s.Equal(NewPiece(Black, Queen), b[0][3])
	s.Equal(NewPiece(Black, King), b[0][4])
	s.Equal(NewPiece(White, King), b[7][4])
	for col := 0; col < 8; col++ {
		s.Equal(NewPiece(Black, Pawn), b[1][col])
		s.Equal(NewPiece(White, Pawn), b[6][col])
	}
	for row := 2; row < 6; row++ {
		for col := 0; col < 8; col++ {
			s.True(b[row][col].IsEmpty())
		}
	}
}
