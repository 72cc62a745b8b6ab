package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/eslteam/chesstutor/internal/dependencies/mocks"
	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/storage/memory"
	"github.com/eslteam/chesstutor/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) createGame() *model.Game {
	s.random.QueueString("GAME00000001")
	game, err := s.controller.CreateGame(s.ctx, "player-1")
	s.Require().NoError(err)
	return game
}

func (s *ControllerSuite) mv(token string) model.Move {
	mv, err := model.ParseMove(token)
	s.Require().NoError(err)
	return mv
}

func (s *ControllerSuite) TestCreateGame() {
	game := s.createGame()

	s.Equal(model.GameID("GAME00000001"), game.ID)
	s.Equal(model.DefaultBoard(), game.Board)
	s.Equal(model.White, game.CurrentPlayer)
	s.False(game.Won)

	stored, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.Board, stored.Board)
}

func (s *ControllerSuite) TestGetGameNotFound() {
	_, err := s.controller.GetGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestMoveAcceptedPersists() {
	game := s.createGame()

	result, err := s.controller.MovePiece(s.ctx, game.ID, s.mv("e2e4"))
	s.Require().NoError(err)
	s.True(result.Accepted)
	s.Equal(model.Black, result.Game.CurrentPlayer)
	s.NotEmpty(result.Events)

	stored, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.Black, stored.CurrentPlayer)

	sq, err := model.ParseSquare("e4")
	s.Require().NoError(err)
	s.Equal(model.NewPiece(model.White, model.Pawn), stored.Board.At(sq))
}

func (s *ControllerSuite) TestMoveRejectedLeavesGame() {
	game := s.createGame()

	result, err := s.controller.MovePiece(s.ctx, game.ID, s.mv("e2e5"))
	s.Require().NoError(err)
	s.False(result.Accepted)
	s.Empty(result.Events)

	stored, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.DefaultBoard(), stored.Board)
	s.Equal(model.White, stored.CurrentPlayer)
}

func (s *ControllerSuite) TestMoveUnknownGame() {
	_, err := s.controller.MovePiece(s.ctx, "missing", s.mv("e2e4"))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestCapturingKingMarksGameWon() {
	game := s.createGame()

	_, err := s.controller.LoadPosition(s.ctx, game.ID, "4k3/p7/8/8/8/8/8/Q3K3 w - - 0 1")
	s.Require().NoError(err)

	result, err := s.controller.MovePiece(s.ctx, game.ID, s.mv("a1h8"))
	s.Require().NoError(err)
	s.True(result.Accepted)
	s.False(result.Game.Won)

	result, err = s.controller.MovePiece(s.ctx, game.ID, s.mv("a7a6"))
	s.Require().NoError(err)
	s.True(result.Accepted)

	result, err = s.controller.MovePiece(s.ctx, game.ID, s.mv("h8e8"))
	s.Require().NoError(err)
	s.Require().True(result.Accepted)
	s.True(result.Game.Won)

	var types []model.EventType
	for _, ev := range result.Events {
		types = append(types, ev.Type)
	}
	s.Contains(types, model.EventGameWon)
	s.Contains(types, model.EventPieceCaptured)
}

func (s *ControllerSuite) TestLoadPosition() {
	game := s.createGame()

	updated, err := s.controller.LoadPosition(s.ctx, game.ID, "8/8/8/8/8/8/8/R7 b - - 0 1")
	s.Require().NoError(err)
	s.Equal(model.Black, updated.CurrentPlayer)
	s.Equal(model.NewPiece(model.White, model.Rook), updated.Board[7][0])
}

func (s *ControllerSuite) TestLoadPositionInvalid() {
	game := s.createGame()

	_, err := s.controller.LoadPosition(s.ctx, game.ID, "nonsense")
	s.ErrorIs(err, model.ErrInvalidPosition)

	stored, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.DefaultBoard(), stored.Board)
}

func (s *ControllerSuite) TestResetGame() {
	game := s.createGame()
	_, err := s.controller.MovePiece(s.ctx, game.ID, s.mv("e2e4"))
	s.Require().NoError(err)

	reset, err := s.controller.ResetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.DefaultBoard(), reset.Board)
	s.Equal(model.White, reset.CurrentPlayer)
	s.False(reset.Won)
}

func (s *ControllerSuite) TestDeleteGame() {
	game := s.createGame()

	s.Require().NoError(s.controller.DeleteGame(s.ctx, game.ID))

	_, err := s.controller.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}
