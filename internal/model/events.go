package model

// EventType identifies the type of event
type EventType string

const (
	// Board engine events
	EventBoardChanged  EventType = "board_changed"
	EventMovePlayed    EventType = "move_played"
	EventPieceCaptured EventType = "piece_captured"
	EventPlayerChanged EventType = "player_changed"
	EventGameWon       EventType = "game_won"

	// Puzzle events
	EventPuzzleBeaten      EventType = "puzzle_beaten"
	EventHintAvailable     EventType = "hint_available"
	EventHintMoveAvailable EventType = "hint_move_available"
)

// Event is the base structure for all engine-emitted events. The engine
// queues events per operation; callers drain them rather than the engine
// calling back into presentation code.
type Event struct {
	Type    EventType
	Payload any // Type-specific data, nil for signal-only events
}

// CapturedPayload carries the render-space coordinates of a capture.
// X/Y are board-to-world coordinates (center of the captured square with
// rank 1 at the bottom); Count is a particle-count hint for effects.
type CapturedPayload struct {
	X     float64
	Y     float64
	Count int
}

// PlayerChangedPayload carries the new side to move.
type PlayerChangedPayload struct {
	Player Color
}

// MovePlayedPayload carries the move that was just applied.
type MovePlayedPayload struct {
	Move    Move
	Capture bool
}

// HintPayload carries the from-square of the upcoming solution move.
type HintPayload struct {
	From Square
}

// HintMovePayload carries the full upcoming solution move.
type HintMovePayload struct {
	Move Move
}
