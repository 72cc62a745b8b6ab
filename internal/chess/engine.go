package chess

import (
	"github.com/eslteam/chesstutor/internal/model"
)

// captureParticleCount is the particle budget attached to capture events
// for front-end effects.
const captureParticleCount = 30

// Engine holds a live board, the side to move, and a queue of events
// describing what the last operations did. It is a plain state machine:
// no goroutines, no callbacks. Callers apply moves and then drain the
// event queue.
//
// Engine is not safe for concurrent use; the owning service serializes
// access per game or session.
type Engine struct {
	board   model.Board
	current model.Color
	events  []model.Event
}

// New returns an engine with an empty board and White to move.
func New() *Engine {
	return &Engine{current: model.White}
}

// Restore rebuilds an engine around a persisted board snapshot and side to
// move, with an empty event queue.
func Restore(board model.Board, toMove model.Color) *Engine {
	return &Engine{board: board, current: toMove}
}

// Board returns a snapshot of the grid. Board is a value type, so the
// caller's copy never aliases engine state.
func (e *Engine) Board() model.Board {
	return e.board
}

// PieceAt returns the piece code at the given square.
func (e *Engine) PieceAt(sq model.Square) model.Piece {
	return e.board.At(sq)
}

// CurrentPlayer returns the side to move.
func (e *Engine) CurrentPlayer() model.Color {
	return e.current
}

// ClearBoard empties every square and emits a board change.
func (e *Engine) ClearBoard() {
	e.board = model.Board{}
	e.emit(model.EventBoardChanged, nil)
}

// LoadDefaultBoard sets up the standard starting position with White to
// move and emits a board change.
func (e *Engine) LoadDefaultBoard() {
	e.board = model.DefaultBoard()
	e.setPlayer(model.White)
	e.emit(model.EventBoardChanged, nil)
}

// AddPiece places a piece during position setup.
func (e *Engine) AddPiece(color model.Color, kind model.Kind, sq model.Square) {
	e.board.Put(sq, model.NewPiece(color, kind))
	e.emit(model.EventBoardChanged, nil)
}

// LoadPosition replaces the board and side to move from a FEN-like
// position string. On error the engine is left unchanged.
func (e *Engine) LoadPosition(position string) error {
	board, toMove, err := ParsePosition(position)
	if err != nil {
		return err
	}
	e.board = board
	e.setPlayer(toMove)
	e.emit(model.EventBoardChanged, nil)
	return nil
}

// MovePiece validates and applies a move for the side to move, reporting
// whether it was accepted. Rejections are silent: the board, the turn, and
// the event queue are untouched.
//
// The checks run in a fixed order: the moving piece must belong to the
// side to move, the destination must differ from the origin, the
// destination must not hold a friendly piece, and finally the per-piece
// movement rule must accept the geometry.
func (e *Engine) MovePiece(from, to model.Square) bool {
	piece := e.board.At(from)
	if !piece.OwnedBy(e.current) {
		return false
	}
	if from == to {
		return false
	}
	if e.board.At(to).OwnedBy(e.current) {
		return false
	}
	if !isLegalMove(&e.board, piece, from, to) {
		return false
	}
	e.ApplyMove(from, to)
	return true
}

// ApplyMove moves a piece unconditionally, bypassing all legality checks.
// The scripted opponent in puzzles uses this: solution lines are trusted.
// Captures, the turn toggle, and win detection still happen.
func (e *Engine) ApplyMove(from, to model.Square) {
	piece := e.board.At(from)
	target := e.board.At(to)

	capture := !target.IsEmpty() && !piece.IsEmpty()
	if capture {
		e.emit(model.EventPieceCaptured, model.CapturedPayload{
			X:     float64(to.Col) + 0.5,
			Y:     float64(8-to.Row) - 0.5,
			Count: captureParticleCount,
		})
	}

	e.board.Put(to, piece)
	e.board.Put(from, 0)

	e.emit(model.EventMovePlayed, model.MovePlayedPayload{
		Move:    model.Move{From: from, To: to},
		Capture: capture,
	})
	e.setPlayer(e.current.Opponent())

	// Capturing the king ends the game. There is no check or checkmate
	// detection; the king must actually be taken.
	if capture && target.Kind() == model.King {
		e.emit(model.EventGameWon, nil)
	}

	e.emit(model.EventBoardChanged, nil)
}

// DrainEvents returns the queued events in emission order and empties the
// queue.
func (e *Engine) DrainEvents() []model.Event {
	events := e.events
	e.events = nil
	return events
}

func (e *Engine) setPlayer(c model.Color) {
	if e.current == c {
		return
	}
	e.current = c
	e.emit(model.EventPlayerChanged, model.PlayerChangedPayload{Player: c})
}

func (e *Engine) emit(t model.EventType, payload any) {
	e.events = append(e.events, model.Event{Type: t, Payload: payload})
}
