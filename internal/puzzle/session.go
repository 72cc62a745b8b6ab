package puzzle

import (
	"fmt"

	"github.com/eslteam/chesstutor/internal/chess"
	"github.com/eslteam/chesstutor/internal/model"
)

// Session is one attempt at a puzzle. It wraps a chess engine and walks the
// scripted solution line with a step cursor: even steps alternate between
// the scripted opponent and the player, starting with the opponent's forced
// move that sets up the tactic.
//
// Wrong guesses and out-of-turn calls are rejections, not errors: they
// return false and leave all state untouched.
type Session struct {
	engine        *chess.Engine
	puzzleID      model.PuzzleID
	rating        int
	moves         []model.Move
	currentStep   int
	hintUsed      bool
	awaitingReply bool
	events        []model.Event
}

// NewFromRecord starts a session from a parsed puzzle record. The position
// is loaded from the record's FEN and the opponent's first scripted move is
// played immediately, so the session comes back with the player to move and
// the cursor on step 1.
func NewFromRecord(record *model.PuzzleRecord) (*Session, error) {
	s, err := New(record.FEN, record.Moves)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", record.ID, err)
	}
	s.puzzleID = record.ID
	s.rating = record.Rating
	return s, nil
}

// New starts a session from a raw position string and solution line. The
// side to move in the position is the scripted opponent; its first move is
// played before New returns.
func New(position string, moves []model.Move) (*Session, error) {
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: no moves", model.ErrInvalidMove)
	}
	engine := chess.New()
	if err := engine.LoadPosition(position); err != nil {
		return nil, err
	}
	s := &Session{
		engine:        engine,
		moves:         moves,
		awaitingReply: true,
	}
	s.collect()
	s.AdvanceOpponent()
	return s, nil
}

// Restore rebuilds a session from its persisted state with an empty event
// queue. No moves are replayed; the board snapshot is authoritative.
func Restore(state model.PuzzleSession) *Session {
	return &Session{
		engine:        chess.Restore(state.Board, state.CurrentPlayer),
		puzzleID:      state.PuzzleID,
		rating:        state.Rating,
		moves:         state.Moves,
		currentStep:   state.CurrentStep,
		hintUsed:      state.HintUsed,
		awaitingReply: state.AwaitingReply,
	}
}

// Save writes the session's live state back into a persisted record,
// leaving identity and timestamp fields to the caller.
func (s *Session) Save(state *model.PuzzleSession) {
	state.PuzzleID = s.puzzleID
	state.Board = s.engine.Board()
	state.CurrentPlayer = s.engine.CurrentPlayer()
	state.Moves = s.moves
	state.CurrentStep = s.currentStep
	state.Rating = s.rating
	state.HintUsed = s.hintUsed
	state.AwaitingReply = s.awaitingReply
}

// Guess submits the player's move. It is accepted only when a player move
// is due and it matches the scripted solution exactly; anything else is
// rejected with no state change. A matched guess is applied unconditionally,
// like the opponent's scripted moves: the solution line is trusted even
// where it uses rules the engine does not implement. Solving the final step
// queues a puzzle beaten event.
func (s *Session) Guess(mv model.Move) bool {
	if s.IsSolved() || s.awaitingReply {
		return false
	}
	if mv != s.moves[s.currentStep] {
		return false
	}
	s.engine.ApplyMove(mv.From, mv.To)
	s.currentStep++
	s.collect()
	if s.IsSolved() {
		s.emit(model.EventPuzzleBeaten, nil)
	} else {
		s.awaitingReply = true
	}
	return true
}

// AdvanceOpponent plays the scripted opponent's pending reply, reporting
// whether one was due. The caller decides when to invoke it, typically
// after a short delay for presentation.
func (s *Session) AdvanceOpponent() bool {
	if s.IsSolved() || !s.awaitingReply {
		return false
	}
	mv := s.moves[s.currentStep]
	s.engine.ApplyMove(mv.From, mv.To)
	s.currentStep++
	s.awaitingReply = false
	s.collect()
	return true
}

// RequestHint reveals the origin square of the next solution move and marks
// the session as hint-assisted, which scores the puzzle as a loss.
func (s *Session) RequestHint() (model.Square, bool) {
	mv, ok := s.playerMoveDue()
	if !ok {
		return model.Square{}, false
	}
	s.hintUsed = true
	s.emit(model.EventHintAvailable, model.HintPayload{From: mv.From})
	return mv.From, true
}

// RequestHintMove reveals the full next solution move and marks the session
// as hint-assisted.
func (s *Session) RequestHintMove() (model.Move, bool) {
	mv, ok := s.playerMoveDue()
	if !ok {
		return model.Move{}, false
	}
	s.hintUsed = true
	s.emit(model.EventHintMoveAvailable, model.HintMovePayload{Move: mv})
	return mv, true
}

// PlaySolutionStep plays the next scripted move regardless of whose turn it
// is. Stepping through the solution counts as using a hint.
func (s *Session) PlaySolutionStep() bool {
	if s.IsSolved() {
		return false
	}
	mv := s.moves[s.currentStep]
	s.engine.ApplyMove(mv.From, mv.To)
	s.currentStep++
	s.awaitingReply = !s.awaitingReply
	s.hintUsed = true
	s.collect()
	return true
}

// PeekNextMove returns the next scripted move without playing it.
func (s *Session) PeekNextMove() (model.Move, bool) {
	if s.IsSolved() {
		return model.Move{}, false
	}
	return s.moves[s.currentStep], true
}

// IsSolved reports whether the cursor has consumed the whole line.
func (s *Session) IsSolved() bool {
	return s.currentStep >= len(s.moves)
}

// DrainEvents returns queued events in emission order and empties the queue.
func (s *Session) DrainEvents() []model.Event {
	s.collect()
	events := s.events
	s.events = nil
	return events
}

// Board returns a snapshot of the current position.
func (s *Session) Board() model.Board {
	return s.engine.Board()
}

// CurrentPlayer returns the side to move.
func (s *Session) CurrentPlayer() model.Color {
	return s.engine.CurrentPlayer()
}

// PuzzleID returns the source puzzle's identifier.
func (s *Session) PuzzleID() model.PuzzleID {
	return s.puzzleID
}

// Rating returns the source puzzle's difficulty rating.
func (s *Session) Rating() int {
	return s.rating
}

// HintUsed reports whether any hint or solution step was taken.
func (s *Session) HintUsed() bool {
	return s.hintUsed
}

// AwaitingReply reports whether a scripted opponent move is pending.
func (s *Session) AwaitingReply() bool {
	return s.awaitingReply
}

// CurrentStep returns the cursor into the solution line.
func (s *Session) CurrentStep() int {
	return s.currentStep
}

// playerMoveDue returns the next move when it is the player's to make.
func (s *Session) playerMoveDue() (model.Move, bool) {
	if s.IsSolved() || s.awaitingReply {
		return model.Move{}, false
	}
	return s.moves[s.currentStep], true
}

func (s *Session) collect() {
	s.events = append(s.events, s.engine.DrainEvents()...)
}

func (s *Session) emit(t model.EventType, payload any) {
	s.events = append(s.events, model.Event{Type: t, Payload: payload})
}
