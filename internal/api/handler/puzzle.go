package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eslteam/chesstutor/internal/api/middleware"
	"github.com/eslteam/chesstutor/internal/api/request"
	"github.com/eslteam/chesstutor/internal/api/response"
	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/services/puzzle"
	"github.com/eslteam/chesstutor/internal/sse"
)

// PuzzleHandler handles puzzle session endpoints
type PuzzleHandler struct {
	puzzleController *puzzle.Controller
	hubManager       *sse.HubManager
	broadcaster      *sse.Broadcaster
}

// NewPuzzleHandler creates a new puzzle handler
func NewPuzzleHandler(
	puzzleController *puzzle.Controller,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *PuzzleHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &PuzzleHandler{
		puzzleController: puzzleController,
		hubManager:       hubManager,
		broadcaster:      broadcaster,
	}
}

func (h *PuzzleHandler) broadcastEvents(sessionID model.SessionID, events []model.Event) {
	if h.broadcaster != nil {
		h.broadcaster.BroadcastSessionEvents(sessionID, events)
	}
}

// StartSession handles POST /api/v1/puzzles/sessions
func (h *PuzzleHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	// The body is optional; an empty body means a random puzzle.
	var req request.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	var (
		state  *model.PuzzleSession
		events []model.Event
		err    error
	)
	if req.PuzzleID != "" {
		state, events, err = h.puzzleController.StartSessionWithPuzzle(r.Context(), player.ID, model.PuzzleID(req.PuzzleID))
	} else {
		state, events, err = h.puzzleController.StartSession(r.Context(), player.ID)
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(state.ID, events)

	response.JSON(w, http.StatusCreated, response.SessionFromModel(state))
}

// GetSession handles GET /api/v1/puzzles/sessions/{id}
func (h *PuzzleHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	state, err := h.puzzleController.GetSession(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(state))
}

// Guess handles POST /api/v1/puzzles/sessions/{id}/guess
func (h *PuzzleHandler) Guess(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

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

	result, err := h.puzzleController.Guess(r.Context(), sessionID, mv)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(sessionID, result.Events)

	resp := response.GuessResult{
		Correct: result.Correct,
		Solved:  result.Solved,
		Session: response.SessionFromModel(result.Session),
		Events:  response.EventsFromModel(result.Events),
	}
	if result.Rating != nil {
		rating := response.RatingFromModel(result.Rating)
		resp.Rating = &rating
	}

	response.JSON(w, http.StatusOK, resp)
}

// AdvanceOpponent handles POST /api/v1/puzzles/sessions/{id}/opponent
func (h *PuzzleHandler) AdvanceOpponent(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	state, events, err := h.puzzleController.AdvanceOpponent(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(sessionID, events)

	response.JSON(w, http.StatusOK, response.SessionFromModel(state))
}

// Hint handles POST /api/v1/puzzles/sessions/{id}/hint
func (h *PuzzleHandler) Hint(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	sq, ok, events, err := h.puzzleController.Hint(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(sessionID, events)

	resp := response.Hint{Available: ok}
	if ok {
		resp.Square = sq.Algebraic()
	}
	response.JSON(w, http.StatusOK, resp)
}

// HintMove handles POST /api/v1/puzzles/sessions/{id}/hint-move
func (h *PuzzleHandler) HintMove(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	mv, ok, events, err := h.puzzleController.HintMove(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(sessionID, events)

	resp := response.HintMove{Available: ok}
	if ok {
		resp.Move = mv.String()
	}
	response.JSON(w, http.StatusOK, resp)
}

// SolutionStep handles POST /api/v1/puzzles/sessions/{id}/solution-step
func (h *PuzzleHandler) SolutionStep(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	state, events, err := h.puzzleController.PlaySolutionStep(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(sessionID, events)

	response.JSON(w, http.StatusOK, response.SessionFromModel(state))
}

// Reset handles POST /api/v1/puzzles/sessions/{id}/reset
func (h *PuzzleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	state, events, err := h.puzzleController.ResetSession(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastEvents(sessionID, events)

	response.JSON(w, http.StatusOK, response.SessionFromModel(state))
}

// Delete handles DELETE /api/v1/puzzles/sessions/{id}
func (h *PuzzleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	if err := h.puzzleController.DeleteSession(r.Context(), sessionID); err != nil {
		WriteError(w, err)
		return
	}

	if h.hubManager != nil {
		h.hubManager.RemoveHub(sse.SessionChannel(sessionID))
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/puzzles/sessions/{id}/events (SSE stream)
func (h *PuzzleHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	if _, err := h.puzzleController.GetSession(r.Context(), sessionID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(sse.SessionChannel(sessionID))
	sse.ServeSSE(w, r, hub, player.ID)
}
