package response

import (
	"strings"

	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Rating represents a player's puzzle rating
type Rating struct {
	Elo           int `json:"elo"`
	PuzzlesSolved int `json:"puzzles_solved"`
	HintsUsed     int `json:"hints_used"`
}

// RatingFromModel converts model.PlayerRating
func RatingFromModel(r *model.PlayerRating) Rating {
	return Rating{
		Elo:           r.Elo,
		PuzzlesSolved: r.PuzzlesSolved,
		HintsUsed:     r.HintsUsed,
	}
}

// pieceLetters maps piece kinds to their uppercase placement letters.
var pieceLetters = map[model.Kind]string{
	model.Pawn:   "P",
	model.Rook:   "R",
	model.Knight: "N",
	model.Bishop: "B",
	model.Queen:  "Q",
	model.King:   "K",
}

// Board represents a board as an 8x8 grid of piece letters, row 0 at the
// top (rank 8). White pieces are uppercase, Black lowercase, empty squares
// are empty strings.
type Board [8][8]string

// BoardFromModel converts a model.Board to its letter grid
func BoardFromModel(b model.Board) Board {
	var out Board
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := b[row][col]
			if piece.IsEmpty() {
				continue
			}
			letter := pieceLetters[piece.Kind()]
			if piece.Color() == model.Black {
				letter = strings.ToLower(letter)
			}
			out[row][col] = letter
		}
	}
	return out
}

// Game represents a free-play game
type Game struct {
	ID            string `json:"id"`
	Board         Board  `json:"board"`
	CurrentPlayer string `json:"current_player"`
	Won           bool   `json:"won"`
}

// GameFromModel converts model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:            string(g.ID),
		Board:         BoardFromModel(g.Board),
		CurrentPlayer: g.CurrentPlayer.String(),
		Won:           g.Won,
	}
}

// MoveResult reports a move attempt on a free-play game
type MoveResult struct {
	Accepted bool    `json:"accepted"`
	Game     Game    `json:"game"`
	Events   []Event `json:"events,omitempty"`
}

// Session represents a puzzle session
type Session struct {
	ID            string `json:"id"`
	PuzzleID      string `json:"puzzle_id"`
	Board         Board  `json:"board"`
	CurrentPlayer string `json:"current_player"`
	CurrentStep   int    `json:"current_step"`
	TotalSteps    int    `json:"total_steps"`
	Solved        bool   `json:"solved"`
	AwaitingReply bool   `json:"awaiting_reply"`
	HintUsed      bool   `json:"hint_used"`
	PuzzleRating  int    `json:"puzzle_rating"`
}

// SessionFromModel converts model.PuzzleSession
func SessionFromModel(s *model.PuzzleSession) Session {
	return Session{
		ID:            string(s.ID),
		PuzzleID:      string(s.PuzzleID),
		Board:         BoardFromModel(s.Board),
		CurrentPlayer: s.CurrentPlayer.String(),
		CurrentStep:   s.CurrentStep,
		TotalSteps:    len(s.Moves),
		Solved:        s.CurrentStep >= len(s.Moves),
		AwaitingReply: s.AwaitingReply,
		HintUsed:      s.HintUsed,
		PuzzleRating:  s.Rating,
	}
}

// GuessResult reports a puzzle guess
type GuessResult struct {
	Correct bool    `json:"correct"`
	Solved  bool    `json:"solved"`
	Session Session `json:"session"`
	Events  []Event `json:"events,omitempty"`
	Rating  *Rating `json:"rating,omitempty"`
}

// Hint reveals the origin square of the next solution move. Available is
// false when no hint is due (session solved or opponent reply pending).
type Hint struct {
	Available bool   `json:"available"`
	Square    string `json:"square,omitempty"`
}

// HintMove reveals the full next solution move
type HintMove struct {
	Available bool   `json:"available"`
	Move      string `json:"move,omitempty"`
}

// Event represents an engine event
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// EventsFromModel converts a batch of engine events
func EventsFromModel(events []model.Event) []Event {
	if len(events) == 0 {
		return nil
	}
	out := make([]Event, len(events))
	for i, ev := range events {
		out[i] = Event{Type: string(ev.Type), Payload: ev.Payload}
	}
	return out
}
