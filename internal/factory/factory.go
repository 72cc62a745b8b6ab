package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/eslteam/chesstutor/internal/dependencies/clock"
	"github.com/eslteam/chesstutor/internal/dependencies/random"
	"github.com/eslteam/chesstutor/internal/services/auth"
	"github.com/eslteam/chesstutor/internal/services/catalog"
	"github.com/eslteam/chesstutor/internal/services/game"
	"github.com/eslteam/chesstutor/internal/services/puzzle"
	"github.com/eslteam/chesstutor/internal/services/rating"
	"github.com/eslteam/chesstutor/internal/sse"
	"github.com/eslteam/chesstutor/internal/storage"
	"github.com/eslteam/chesstutor/internal/storage/memory"
	redisstorage "github.com/eslteam/chesstutor/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService   *catalog.Service
	RatingService    *rating.Service
	GameController   *game.Controller
	PuzzleController *puzzle.Controller
	AuthService      *auth.Service
	HubManager       *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// PuzzleFile is the path to the puzzle catalog file (optional)
	// If empty, the catalog must be loaded manually
	PuzzleFile string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	catalogService := catalog.New(store, rnd, logger)
	ratingService := rating.New(store, clk, logger)
	gameController := game.NewController(store, clk, rnd, logger)
	puzzleController := puzzle.NewController(store, catalogService, ratingService, clk, rnd, logger)
	authService := auth.New(store, clk, authCfg)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		CatalogService:   catalogService,
		RatingService:    ratingService,
		GameController:   gameController,
		PuzzleController: puzzleController,
		AuthService:      authService,
		HubManager:       hubManager,
	}
}
