package puzzle

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/eslteam/chesstutor/internal/model"
)

// A mate-in-two from the Lichess database. Black moves first as the
// scripted opponent (e8d7), then White (the player) mates with a2e6,
// Black blocks with d7d8, and f7f8 finishes.
const testRecordLine = "00sHx,q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B1PP1b2/B5PP/5K2 b - - 1 17," +
	"e8d7 a2e6 d7d8 f7f8,1760,80,83,72,mate mateIn2 middlegame short,https://lichess.org/yyznGmXs/black#34"

type SessionSuite struct {
	suite.Suite
	session *Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	record, err := model.ParsePuzzleRecord(testRecordLine)
	s.Require().NoError(err)
	s.session, err = NewFromRecord(record)
	s.Require().NoError(err)
}

func (s *SessionSuite) mv(token string) model.Move {
	mv, err := model.ParseMove(token)
	s.Require().NoError(err)
	return mv
}

func (s *SessionSuite) TestConstructionPlaysOpponentOpening() {
	// The Black king already moved e8d7 and the cursor sits on step 1
	// with White (the player) to move.
	s.Equal(1, s.session.CurrentStep())
	s.Equal(model.White, s.session.CurrentPlayer())
	s.False(s.session.AwaitingReply())
	s.False(s.session.IsSolved())

	sq, err := model.ParseSquare("d7")
	s.Require().NoError(err)
	s.Equal(model.NewPiece(model.Black, model.King), s.session.Board().At(sq))
}

func (s *SessionSuite) TestConstructionFailsOnBadPosition() {
	_, err := New("nonsense", []model.Move{s.mv("e2e4")})
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *SessionSuite) TestConstructionFailsOnEmptyLine() {
	_, err := New("8/8/8/8/8/8/8/8 w - - 0 1", nil)
	s.ErrorIs(err, model.ErrInvalidMove)
}

func (s *SessionSuite) TestCorrectGuessAdvances() {
	s.True(s.session.Guess(s.mv("a2e6")))

	s.Equal(2, s.session.CurrentStep())
	s.True(s.session.AwaitingReply())
	s.False(s.session.IsSolved())
}

func (s *SessionSuite) TestWrongGuessRejected() {
	board := s.session.Board()

	s.False(s.session.Guess(s.mv("a2b1")))

	s.Equal(1, s.session.CurrentStep())
	s.Equal(board, s.session.Board())
	s.False(s.session.AwaitingReply())
}

func (s *SessionSuite) TestGuessRejectedWhileReplyPending() {
	s.True(s.session.Guess(s.mv("a2e6")))
	s.session.DrainEvents()

	// The next player move is d7d8's answer f7f8, but the opponent's
	// d7d8 has not been played yet.
	s.False(s.session.Guess(s.mv("f7f8")))
	s.Empty(s.session.DrainEvents())
}

func (s *SessionSuite) TestAdvanceOpponentPlaysScriptedReply() {
	s.True(s.session.Guess(s.mv("a2e6")))
	s.True(s.session.AdvanceOpponent())

	s.Equal(3, s.session.CurrentStep())
	s.False(s.session.AwaitingReply())
	s.Equal(model.White, s.session.CurrentPlayer())
}

func (s *SessionSuite) TestAdvanceOpponentNoOpWhenNotPending() {
	s.False(s.session.AdvanceOpponent())
	s.Equal(1, s.session.CurrentStep())
}

func (s *SessionSuite) TestSolvingEmitsPuzzleBeaten() {
	s.True(s.session.Guess(s.mv("a2e6")))
	s.True(s.session.AdvanceOpponent())
	s.session.DrainEvents()

	s.True(s.session.Guess(s.mv("f7f8")))

	s.True(s.session.IsSolved())
	var types []model.EventType
	for _, ev := range s.session.DrainEvents() {
		types = append(types, ev.Type)
	}
	s.Contains(types, model.EventPuzzleBeaten)
}

func (s *SessionSuite) TestMatchedGuessAppliedUnconditionally() {
	// Lichess lines can use rules the engine does not implement. Here the
	// scripted reply to d7d5 is the en-passant-shaped e5d6: a pawn moving
	// diagonally onto an empty square, which MovePiece would reject. A
	// matched guess must still be applied, or the session wedges.
	session, err := New("8/3p4/8/4P3/8/8/8/8 b", []model.Move{s.mv("d7d5"), s.mv("e5d6")})
	s.Require().NoError(err)

	s.True(session.Guess(s.mv("e5d6")))

	s.Equal(2, session.CurrentStep())
	s.True(session.IsSolved())
	d6, err := model.ParseSquare("d6")
	s.Require().NoError(err)
	s.Equal(model.NewPiece(model.White, model.Pawn), session.Board().At(d6))
}

func (s *SessionSuite) TestGuessRejectedAfterSolved() {
	s.True(s.session.Guess(s.mv("a2e6")))
	s.True(s.session.AdvanceOpponent())
	s.True(s.session.Guess(s.mv("f7f8")))

	s.False(s.session.Guess(s.mv("f7f8")))
	s.False(s.session.AdvanceOpponent())
}

func (s *SessionSuite) TestHintRevealsOriginAndMarksSession() {
	sq, ok := s.session.RequestHint()
	s.True(ok)
	s.Equal("a2", sq.Algebraic())
	s.True(s.session.HintUsed())

	var types []model.EventType
	for _, ev := range s.session.DrainEvents() {
		types = append(types, ev.Type)
	}
	s.Contains(types, model.EventHintAvailable)
}

func (s *SessionSuite) TestHintMoveRevealsFullMove() {
	mv, ok := s.session.RequestHintMove()
	s.True(ok)
	s.Equal("a2e6", mv.String())
	s.True(s.session.HintUsed())
}

func (s *SessionSuite) TestHintRejectedWhileReplyPending() {
	s.True(s.session.Guess(s.mv("a2e6")))

	_, ok := s.session.RequestHint()
	s.False(ok)
}

func (s *SessionSuite) TestPeekNextMove() {
	mv, ok := s.session.PeekNextMove()
	s.True(ok)
	s.Equal("a2e6", mv.String())
	// Peeking does not advance or mark anything.
	s.Equal(1, s.session.CurrentStep())
	s.False(s.session.HintUsed())
}

func (s *SessionSuite) TestPlaySolutionStepWalksLine() {
	for !s.session.IsSolved() {
		s.True(s.session.PlaySolutionStep())
	}

	s.Equal(4, s.session.CurrentStep())
	s.True(s.session.HintUsed())
	s.False(s.session.PlaySolutionStep())
}

func (s *SessionSuite) TestSaveAndRestoreRoundTrip() {
	s.True(s.session.Guess(s.mv("a2e6")))

	var state model.PuzzleSession
	s.session.Save(&state)
	s.Equal(model.PuzzleID("00sHx"), state.PuzzleID)
	s.Equal(2, state.CurrentStep)
	s.True(state.AwaitingReply)
	s.Equal(1760, state.Rating)

	restored := Restore(state)
	s.Equal(s.session.Board(), restored.Board())
	s.Equal(s.session.CurrentPlayer(), restored.CurrentPlayer())
	s.True(restored.AdvanceOpponent())
	s.Equal(3, restored.CurrentStep())
}

func (s *SessionSuite) TestRatingAndID() {
	s.Equal(model.PuzzleID("00sHx"), s.session.PuzzleID())
	s.Equal(1760, s.session.Rating())
}
