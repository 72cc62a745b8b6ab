package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eslteam/chesstutor/internal/api/handler"
	"github.com/eslteam/chesstutor/internal/api/middleware"
	"github.com/eslteam/chesstutor/internal/services/auth"
	"github.com/eslteam/chesstutor/internal/services/game"
	"github.com/eslteam/chesstutor/internal/services/puzzle"
	"github.com/eslteam/chesstutor/internal/services/rating"
	"github.com/eslteam/chesstutor/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	RatingService    *rating.Service
	GameController   *game.Controller
	PuzzleController *puzzle.Controller
	HubManager       *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.RatingService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Logger)
	puzzleHandler := handler.NewPuzzleHandler(cfg.PuzzleController, cfg.HubManager, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me/rating", playerHandler.GetMyRating).Methods(http.MethodGet)

	// Free-play game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/moves", gameHandler.Move).Methods(http.MethodPost)
	games.HandleFunc("/{id}/position", gameHandler.LoadPosition).Methods(http.MethodPost)
	games.HandleFunc("/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Puzzle session routes (all require auth)
	sessions := api.PathPrefix("/puzzles/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", puzzleHandler.StartSession).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", puzzleHandler.GetSession).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", puzzleHandler.Delete).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/guess", puzzleHandler.Guess).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/opponent", puzzleHandler.AdvanceOpponent).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/hint", puzzleHandler.Hint).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/hint-move", puzzleHandler.HintMove).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/solution-step", puzzleHandler.SolutionStep).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/reset", puzzleHandler.Reset).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/events", puzzleHandler.Events).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
