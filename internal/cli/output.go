package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Rating:
		o.printRating(v)
	case Game:
		o.printGame(v)
	case MoveResult:
		o.printMoveResult(v)
	case Session:
		o.printSession(v)
	case GuessResult:
		o.printGuessResult(v)
	case Hint:
		o.printHint(v)
	case HintMove:
		o.printHintMove(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Rating response type
type Rating struct {
	Elo           int `json:"elo"`
	PuzzlesSolved int `json:"puzzles_solved"`
	HintsUsed     int `json:"hints_used"`
}

// Board response type: 8x8 grid of piece letters, rank 8 first
type Board [8][8]string

// Game response type
type Game struct {
	ID            string `json:"id"`
	Board         Board  `json:"board"`
	CurrentPlayer string `json:"current_player"`
	Won           bool   `json:"won"`
}

// MoveResult response type
type MoveResult struct {
	Accepted bool    `json:"accepted"`
	Game     Game    `json:"game"`
	Events   []Event `json:"events,omitempty"`
}

// Session response type
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

// GuessResult response type
type GuessResult struct {
	Correct bool    `json:"correct"`
	Solved  bool    `json:"solved"`
	Session Session `json:"session"`
	Events  []Event `json:"events,omitempty"`
	Rating  *Rating `json:"rating,omitempty"`
}

// Hint response type
type Hint struct {
	Available bool   `json:"available"`
	Square    string `json:"square"`
}

// HintMove response type
type HintMove struct {
	Available bool   `json:"available"`
	Move      string `json:"move"`
}

// Event response type
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRating(r Rating) {
	fmt.Printf("Elo: %d\n", r.Elo)
	fmt.Printf("Puzzles Solved: %d\n", r.PuzzlesSolved)
	fmt.Printf("Hints Used: %d\n", r.HintsUsed)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("To Move: %s\n", g.CurrentPlayer)
	if g.Won {
		fmt.Println("Game over: king captured")
	}
	fmt.Println()
	o.printBoard(g.Board)
}

func (o *Output) printMoveResult(m MoveResult) {
	if m.Accepted {
		fmt.Println("Move accepted")
	} else {
		fmt.Println("Move rejected")
	}
	o.printGame(m.Game)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Puzzle: %s (rating %d)\n", s.PuzzleID, s.PuzzleRating)
	fmt.Printf("Step: %d/%d\n", s.CurrentStep, s.TotalSteps)
	fmt.Printf("To Move: %s\n", s.CurrentPlayer)
	if s.Solved {
		fmt.Println("Puzzle solved!")
	} else if s.AwaitingReply {
		fmt.Println("Opponent reply pending (run puzzle opponent)")
	}
	if s.HintUsed {
		fmt.Println("Hints were used")
	}
	fmt.Println()
	o.printBoard(s.Board)
}

func (o *Output) printGuessResult(g GuessResult) {
	if !g.Correct {
		fmt.Println("Wrong move, try again")
		return
	}

	fmt.Println("Correct!")
	if g.Solved {
		fmt.Println("Puzzle solved!")
		if g.Rating != nil {
			fmt.Printf("New Elo: %d\n", g.Rating.Elo)
		}
	}
	o.printSession(g.Session)
}

func (o *Output) printHint(h Hint) {
	if !h.Available {
		fmt.Println("No hint available right now")
		return
	}
	fmt.Printf("Hint: move the piece on %s\n", h.Square)
}

func (o *Output) printHintMove(h HintMove) {
	if !h.Available {
		fmt.Println("No hint available right now")
		return
	}
	fmt.Printf("Hint: play %s\n", h.Move)
}

func (o *Output) printBoard(b Board) {
	// Print ranks from the top (rank 8) down, the way the API orders rows
	fmt.Println("   +------------------------+")
	for row := 0; row < 8; row++ {
		fmt.Printf(" %d |", 8-row)
		for col := 0; col < 8; col++ {
			cell := b[row][col]
			if cell == "" {
				fmt.Print(" . ")
			} else {
				fmt.Printf(" %s ", cell)
			}
		}
		fmt.Println("|")
	}
	fmt.Println("   +------------------------+")
	fmt.Println("     a  b  c  d  e  f  g  h")
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
