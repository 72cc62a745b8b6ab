package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MoveRequest is the request body for playing a move, in coordinate
// notation ("e2e4")
type MoveRequest struct {
	Move string `json:"move"`
}

// LoadPositionRequest is the request body for loading a position string
type LoadPositionRequest struct {
	Position string `json:"position"`
}

// StartSessionRequest is the request body for starting a puzzle session.
// PuzzleID is optional; when empty a random puzzle is chosen.
type StartSessionRequest struct {
	PuzzleID string `json:"puzzle_id,omitempty"`
}
