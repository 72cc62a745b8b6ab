package game

import (
	"context"
	"log/slog"

	"github.com/eslteam/chesstutor/internal/chess"
	"github.com/eslteam/chesstutor/internal/dependencies/clock"
	"github.com/eslteam/chesstutor/internal/dependencies/random"
	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/storage"
)

// Controller manages free-play games: open boards with no scripted line,
// played until a king is captured. Every operation loads the game from
// storage, runs it through a chess engine, and saves the result, so game
// state never lives in process memory between requests.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// MoveResult reports what a move attempt did.
type MoveResult struct {
	Accepted bool
	Game     *model.Game
	Events   []model.Event
}

// CreateGame starts a free-play game from the standard starting position
func (c *Controller) CreateGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	now := c.clock.Now()
	gameID := model.GameID(c.random.String(12, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"))

	game := &model.Game{
		ID:            gameID,
		PlayerID:      playerID,
		Board:         model.DefaultBoard(),
		CurrentPlayer: model.White,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// MovePiece attempts a move in the game. A rejected move is not an error:
// the result comes back with Accepted false and the game untouched.
func (c *Controller) MovePiece(ctx context.Context, gameID model.GameID, mv model.Move) (*MoveResult, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	engine := chess.Restore(game.Board, game.CurrentPlayer)
	if !engine.MovePiece(mv.From, mv.To) {
		return &MoveResult{Accepted: false, Game: game}, nil
	}

	events := engine.DrainEvents()
	game.Board = engine.Board()
	game.CurrentPlayer = engine.CurrentPlayer()
	game.UpdatedAt = c.clock.Now()
	for _, ev := range events {
		if ev.Type == model.EventGameWon {
			game.Won = true
		}
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("move played",
		slog.String("game_id", string(gameID)),
		slog.String("move", mv.String()),
		slog.Bool("won", game.Won),
	)

	return &MoveResult{Accepted: true, Game: game, Events: events}, nil
}

// LoadPosition replaces the game's board with a position string
func (c *Controller) LoadPosition(ctx context.Context, gameID model.GameID, position string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	engine := chess.New()
	if err := engine.LoadPosition(position); err != nil {
		return nil, err
	}

	game.Board = engine.Board()
	game.CurrentPlayer = engine.CurrentPlayer()
	game.Won = false
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// ResetGame puts the game back to the standard starting position
func (c *Controller) ResetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game.Board = model.DefaultBoard()
	game.CurrentPlayer = model.White
	game.Won = false
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// DeleteGame removes a game
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	return c.storage.DeleteGame(ctx, gameID)
}
