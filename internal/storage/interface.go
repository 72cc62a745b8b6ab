package storage

import (
	"context"

	"github.com/eslteam/chesstutor/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Rating operations
	SaveRating(ctx context.Context, rating *model.PlayerRating) error
	GetRating(ctx context.Context, playerID model.PlayerID) (*model.PlayerRating, error)

	// Free-play game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Puzzle session operations
	SaveSession(ctx context.Context, session *model.PuzzleSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.PuzzleSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// Puzzle catalog operations
	SavePuzzles(ctx context.Context, puzzles []*model.PuzzleRecord) error
	GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.PuzzleRecord, error)
	ListPuzzleIDs(ctx context.Context) ([]model.PuzzleID, error)
}
