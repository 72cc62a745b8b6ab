package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/eslteam/chesstutor/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestPuzzles(s.ctx))
}

func (s *IntegrationSuite) mv(token string) model.Move {
	mv, err := model.ParseMove(token)
	s.Require().NoError(err)
	return mv
}

// Test: Complete puzzle flow from session start to rating settlement
func (s *IntegrationSuite) TestCompletePuzzleFlow() {
	s.app.MockRandom.QueueString("session00001")

	// Step 1: Start a session on the mate-in-two puzzle. The scripted
	// opponent plays the setup move during construction.
	state, events, err := s.app.PuzzleController.StartSessionWithPuzzle(s.ctx, "player-1", "00sHx")
	s.Require().NoError(err)
	s.Equal(model.SessionID("session00001"), state.ID)
	s.Equal(1, state.CurrentStep)
	s.Equal(model.White, state.CurrentPlayer)
	s.NotEmpty(events)

	// Step 2: First player move
	result, err := s.app.PuzzleController.Guess(s.ctx, state.ID, s.mv("a2e6"))
	s.Require().NoError(err)
	s.True(result.Correct)
	s.False(result.Solved)
	s.True(result.Session.AwaitingReply)

	// Step 3: Opponent reply
	state, _, err = s.app.PuzzleController.AdvanceOpponent(s.ctx, state.ID)
	s.Require().NoError(err)
	s.Equal(3, state.CurrentStep)
	s.False(state.AwaitingReply)

	// Step 4: Final move solves the puzzle and settles the rating
	result, err = s.app.PuzzleController.Guess(s.ctx, state.ID, s.mv("f7f8"))
	s.Require().NoError(err)
	s.True(result.Correct)
	s.True(result.Solved)
	s.Require().NotNil(result.Rating)
	s.Greater(result.Rating.Elo, model.DefaultElo)
	s.Equal(1, result.Rating.PuzzlesSolved)
	s.Equal(0, result.Rating.HintsUsed)

	// A PuzzleBeaten event accompanies the solving move
	beaten := false
	for _, ev := range result.Events {
		if ev.Type == model.EventPuzzleBeaten {
			beaten = true
		}
	}
	s.True(beaten, "solving move should emit puzzle beaten")

	// Step 5: The settled rating is visible through the rating service
	playerRating, err := s.app.RatingService.GetRating(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(result.Rating.Elo, playerRating.Elo)
}

// Test: Hints mark the session and score the solve as a loss
func (s *IntegrationSuite) TestPuzzleFlowWithHints() {
	s.app.MockRandom.QueueString("session00002")

	state, _, err := s.app.PuzzleController.StartSessionWithPuzzle(s.ctx, "player-2", "00sHx")
	s.Require().NoError(err)

	sq, ok, _, err := s.app.PuzzleController.Hint(s.ctx, state.ID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("a2", sq.Algebraic())

	hintMv, ok, _, err := s.app.PuzzleController.HintMove(s.ctx, state.ID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("a2e6", hintMv.String())

	_, err = s.app.PuzzleController.Guess(s.ctx, state.ID, s.mv("a2e6"))
	s.Require().NoError(err)
	_, _, err = s.app.PuzzleController.AdvanceOpponent(s.ctx, state.ID)
	s.Require().NoError(err)

	result, err := s.app.PuzzleController.Guess(s.ctx, state.ID, s.mv("f7f8"))
	s.Require().NoError(err)
	s.True(result.Solved)
	s.Require().NotNil(result.Rating)

	// Hinted solve counts as a loss. Against a much stronger puzzle the
	// deduction rounds to zero.
	s.Equal(model.DefaultElo, result.Rating.Elo)
	s.Equal(1, result.Rating.HintsUsed)
	s.True(result.Session.HintUsed)
}

// Test: Wrong guess leaves the session untouched; reset restores the start
func (s *IntegrationSuite) TestWrongGuessAndReset() {
	s.app.MockRandom.QueueString("session00003")

	state, _, err := s.app.PuzzleController.StartSessionWithPuzzle(s.ctx, "player-3", "00sHx")
	s.Require().NoError(err)

	result, err := s.app.PuzzleController.Guess(s.ctx, state.ID, s.mv("f7f8"))
	s.Require().NoError(err)
	s.False(result.Correct)
	s.Equal(1, result.Session.CurrentStep)

	// Advance past the first player move, then reset
	_, err = s.app.PuzzleController.Guess(s.ctx, state.ID, s.mv("a2e6"))
	s.Require().NoError(err)

	state, _, err = s.app.PuzzleController.ResetSession(s.ctx, state.ID)
	s.Require().NoError(err)
	s.Equal(model.SessionID("session00003"), state.ID)
	s.Equal(1, state.CurrentStep)
	s.False(state.HintUsed)
	s.False(state.AwaitingReply)
}

// Test: Random puzzle selection follows catalog insertion order
func (s *IntegrationSuite) TestRandomPuzzleSelection() {
	s.app.MockRandom.QueueIntn(1)
	s.app.MockRandom.QueueString("session00004")

	state, _, err := s.app.PuzzleController.StartSession(s.ctx, "player-4")
	s.Require().NoError(err)
	s.Equal(model.PuzzleID("rkend"), state.PuzzleID)
}

// Test: Free-play game from creation through a king capture
func (s *IntegrationSuite) TestFreePlayGameFlow() {
	s.app.MockRandom.QueueString("GAME00000001")

	g, err := s.app.GameController.CreateGame(s.ctx, "host")
	s.Require().NoError(err)
	s.Equal(model.GameID("GAME00000001"), g.ID)
	s.Equal(model.White, g.CurrentPlayer)

	// Standard opening moves are accepted
	result, err := s.app.GameController.MovePiece(s.ctx, g.ID, s.mv("e2e4"))
	s.Require().NoError(err)
	s.True(result.Accepted)
	s.Equal(model.Black, result.Game.CurrentPlayer)

	result, err = s.app.GameController.MovePiece(s.ctx, g.ID, s.mv("e7e5"))
	s.Require().NoError(err)
	s.True(result.Accepted)

	// An illegal king move is rejected without an error
	result, err = s.app.GameController.MovePiece(s.ctx, g.ID, s.mv("e1e3"))
	s.Require().NoError(err)
	s.False(result.Accepted)
	s.Empty(result.Events)

	// Load a custom position and capture the king
	g, err = s.app.GameController.LoadPosition(s.ctx, g.ID, "4k3/p7/8/8/8/8/8/Q3K3 w")
	s.Require().NoError(err)
	s.Equal(model.White, g.CurrentPlayer)

	for _, token := range []string{"a1h8", "a7a6"} {
		result, err = s.app.GameController.MovePiece(s.ctx, g.ID, s.mv(token))
		s.Require().NoError(err)
		s.Require().True(result.Accepted)
	}

	result, err = s.app.GameController.MovePiece(s.ctx, g.ID, s.mv("h8e8"))
	s.Require().NoError(err)
	s.True(result.Accepted)
	s.True(result.Game.Won)

	won := false
	for _, ev := range result.Events {
		if ev.Type == model.EventGameWon {
			won = true
		}
	}
	s.True(won, "king capture should emit game won")

	// Reset returns to the starting position
	g, err = s.app.GameController.ResetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.False(g.Won)
	s.Equal(model.DefaultBoard(), g.Board)
}

// Test: Rating accumulates across puzzles for the same player
func (s *IntegrationSuite) TestRatingAccumulatesAcrossPuzzles() {
	solve := func(sessionID string) *model.PlayerRating {
		s.app.MockRandom.QueueString(sessionID)
		state, _, err := s.app.PuzzleController.StartSessionWithPuzzle(s.ctx, "player-5", "00sHx")
		s.Require().NoError(err)

		_, err = s.app.PuzzleController.Guess(s.ctx, state.ID, s.mv("a2e6"))
		s.Require().NoError(err)
		_, _, err = s.app.PuzzleController.AdvanceOpponent(s.ctx, state.ID)
		s.Require().NoError(err)

		result, err := s.app.PuzzleController.Guess(s.ctx, state.ID, s.mv("f7f8"))
		s.Require().NoError(err)
		s.Require().True(result.Solved)
		return result.Rating
	}

	first := solve("session0000a")
	second := solve("session0000b")

	s.Greater(second.Elo, first.Elo)
	s.Equal(2, second.PuzzlesSolved)
}
