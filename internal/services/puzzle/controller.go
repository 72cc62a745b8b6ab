package puzzle

import (
	"context"
	"log/slog"

	"github.com/eslteam/chesstutor/internal/dependencies/clock"
	"github.com/eslteam/chesstutor/internal/dependencies/random"
	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/puzzle"
	"github.com/eslteam/chesstutor/internal/services/catalog"
	"github.com/eslteam/chesstutor/internal/services/rating"
	"github.com/eslteam/chesstutor/internal/storage"
)

// Controller manages puzzle sessions: picking a puzzle, checking guesses,
// advancing the scripted opponent, and settling the rating once a session
// finishes. Session state is persisted on every operation; the engine is
// rebuilt from the snapshot each time.
type Controller struct {
	storage        storage.Storage
	catalogService *catalog.Service
	ratingService  *rating.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new puzzle Controller
func NewController(
	storage storage.Storage,
	catalogService *catalog.Service,
	ratingService *rating.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		catalogService: catalogService,
		ratingService:  ratingService,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

// GuessResult reports what a guess did. Rating is set only when the guess
// finished the puzzle.
type GuessResult struct {
	Correct bool
	Solved  bool
	Session *model.PuzzleSession
	Events  []model.Event
	Rating  *model.PlayerRating
}

// StartSession begins a session on a random puzzle from the catalog
func (c *Controller) StartSession(ctx context.Context, playerID model.PlayerID) (*model.PuzzleSession, []model.Event, error) {
	record, err := c.catalogService.RandomPuzzle(ctx)
	if err != nil {
		return nil, nil, err
	}
	return c.startFromRecord(ctx, playerID, record)
}

// StartSessionWithPuzzle begins a session on a specific puzzle
func (c *Controller) StartSessionWithPuzzle(ctx context.Context, playerID model.PlayerID, puzzleID model.PuzzleID) (*model.PuzzleSession, []model.Event, error) {
	record, err := c.catalogService.GetPuzzle(ctx, puzzleID)
	if err != nil {
		return nil, nil, err
	}
	return c.startFromRecord(ctx, playerID, record)
}

func (c *Controller) startFromRecord(ctx context.Context, playerID model.PlayerID, record *model.PuzzleRecord) (*model.PuzzleSession, []model.Event, error) {
	session, err := puzzle.NewFromRecord(record)
	if err != nil {
		return nil, nil, err
	}
	events := session.DrainEvents()

	now := c.clock.Now()
	state := &model.PuzzleSession{
		ID:        model.SessionID(c.random.String(12, "abcdefghijklmnopqrstuvwxyz0123456789")),
		PlayerID:  playerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	session.Save(state)

	if err := c.storage.SaveSession(ctx, state); err != nil {
		return nil, nil, err
	}

	c.logger.Info("puzzle session started",
		slog.String("session_id", string(state.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("puzzle_id", string(record.ID)),
		slog.Int("puzzle_rating", record.Rating),
	)

	return state, events, nil
}

// GetSession retrieves a session by ID
func (c *Controller) GetSession(ctx context.Context, sessionID model.SessionID) (*model.PuzzleSession, error) {
	return c.storage.GetSession(ctx, sessionID)
}

// Guess submits the player's move for the session. A wrong guess is not an
// error; solving the final step settles the player's rating.
func (c *Controller) Guess(ctx context.Context, sessionID model.SessionID, mv model.Move) (*GuessResult, error) {
	state, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session := puzzle.Restore(*state)
	if !session.Guess(mv) {
		return &GuessResult{Correct: false, Session: state}, nil
	}

	events := session.DrainEvents()
	session.Save(state)
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, state); err != nil {
		return nil, err
	}

	result := &GuessResult{
		Correct: true,
		Solved:  session.IsSolved(),
		Session: state,
		Events:  events,
	}

	if result.Solved {
		playerRating, err := c.ratingService.RecordResult(ctx, state.PlayerID, session.Rating(), session.HintUsed())
		if err != nil {
			return nil, err
		}
		result.Rating = playerRating

		c.logger.Info("puzzle solved",
			slog.String("session_id", string(sessionID)),
			slog.String("puzzle_id", string(session.PuzzleID())),
			slog.Bool("hint_used", session.HintUsed()),
			slog.Int("new_elo", playerRating.Elo),
		)
	}

	return result, nil
}

// AdvanceOpponent plays the pending scripted reply, if any
func (c *Controller) AdvanceOpponent(ctx context.Context, sessionID model.SessionID) (*model.PuzzleSession, []model.Event, error) {
	state, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	session := puzzle.Restore(*state)
	if !session.AdvanceOpponent() {
		return state, nil, nil
	}

	events := session.DrainEvents()
	session.Save(state)
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, state); err != nil {
		return nil, nil, err
	}
	return state, events, nil
}

// Hint reveals the origin square of the next solution move. The boolean
// reports whether a hint was due: a solved session or a pending opponent
// reply yields false and no square.
func (c *Controller) Hint(ctx context.Context, sessionID model.SessionID) (model.Square, bool, []model.Event, error) {
	state, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return model.Square{}, false, nil, err
	}

	session := puzzle.Restore(*state)
	sq, ok := session.RequestHint()
	if !ok {
		return model.Square{}, false, nil, nil
	}

	events := session.DrainEvents()
	session.Save(state)
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, state); err != nil {
		return model.Square{}, false, nil, err
	}
	return sq, true, events, nil
}

// HintMove reveals the full next solution move. The boolean reports whether
// a hint was due, as for Hint.
func (c *Controller) HintMove(ctx context.Context, sessionID model.SessionID) (model.Move, bool, []model.Event, error) {
	state, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return model.Move{}, false, nil, err
	}

	session := puzzle.Restore(*state)
	mv, ok := session.RequestHintMove()
	if !ok {
		return model.Move{}, false, nil, nil
	}

	events := session.DrainEvents()
	session.Save(state)
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, state); err != nil {
		return model.Move{}, false, nil, err
	}
	return mv, true, events, nil
}

// PlaySolutionStep plays the next scripted move regardless of turn. When
// playback exhausts the line the puzzle counts as finished with hints, so
// the player's rating is settled as a loss, the same as a hinted solve.
func (c *Controller) PlaySolutionStep(ctx context.Context, sessionID model.SessionID) (*model.PuzzleSession, []model.Event, error) {
	state, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	session := puzzle.Restore(*state)
	if !session.PlaySolutionStep() {
		return state, nil, nil
	}

	events := session.DrainEvents()
	session.Save(state)
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, state); err != nil {
		return nil, nil, err
	}

	if session.IsSolved() {
		playerRating, err := c.ratingService.RecordResult(ctx, state.PlayerID, session.Rating(), session.HintUsed())
		if err != nil {
			return nil, nil, err
		}

		c.logger.Info("puzzle finished via solution playback",
			slog.String("session_id", string(sessionID)),
			slog.String("puzzle_id", string(session.PuzzleID())),
			slog.Int("new_elo", playerRating.Elo),
		)
	}

	return state, events, nil
}

// ResetSession restarts the session's puzzle from the beginning
func (c *Controller) ResetSession(ctx context.Context, sessionID model.SessionID) (*model.PuzzleSession, []model.Event, error) {
	state, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	record, err := c.catalogService.GetPuzzle(ctx, state.PuzzleID)
	if err != nil {
		return nil, nil, err
	}

	session, err := puzzle.NewFromRecord(record)
	if err != nil {
		return nil, nil, err
	}
	events := session.DrainEvents()

	session.Save(state)
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, state); err != nil {
		return nil, nil, err
	}
	return state, events, nil
}

// DeleteSession removes a session
func (c *Controller) DeleteSession(ctx context.Context, sessionID model.SessionID) error {
	return c.storage.DeleteSession(ctx, sessionID)
}
