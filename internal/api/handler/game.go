package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eslteam/chesstutor/internal/api/middleware"
	"github.com/eslteam/chesstutor/internal/api/request"
	"github.com/eslteam/chesstutor/internal/api/response"
	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/services/game"
	"github.com/eslteam/chesstutor/internal/sse"
)

// GameHandler handles free-play game endpoints
type GameHandler struct {
	gameController *game.Controller
	hubManager     *sse.HubManager
	broadcaster    *sse.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	gameController *game.Controller,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *GameHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		broadcaster:    broadcaster,
	}
}

func (h *GameHandler) broadcastEvents(gameID model.GameID, events []model.Event) {
	if h.broadcaster != nil {
		h.broadcaster.BroadcastGameEvents(gameID, events)
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.CreateGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Move handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	mv, err := model.ParseMove(req.Move)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.gameController.MovePiece(r.Context(), gameID, mv)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(gameID, result.Events)

	response.JSON(w, http.StatusOK, response.MoveResult{
		Accepted: result.Accepted,
		Game:     response.GameFromModel(result.Game),
		Events:   response.EventsFromModel(result.Events),
	})
}

// LoadPosition handles POST /api/v1/games/{id}/position
func (h *GameHandler) LoadPosition(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.LoadPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.gameController.LoadPosition(r.Context(), gameID, req.Position)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(gameID, []model.Event{{Type: model.EventBoardChanged}})

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.ResetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(gameID, []model.Event{{Type: model.EventBoardChanged}})

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	if err := h.gameController.DeleteGame(r.Context(), gameID); err != nil {
		WriteError(w, err)
		return
	}

	if h.hubManager != nil {
		h.hubManager.RemoveHub(sse.GameChannel(gameID))
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/games/{id}/events (SSE stream)
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	if _, err := h.gameController.GetGame(r.Context(), gameID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(sse.GameChannel(gameID))
	sse.ServeSSE(w, r, hub, player.ID)
}
