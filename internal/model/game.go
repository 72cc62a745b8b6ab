package model

import "time"

// GameID uniquely identifies a free-play game
type GameID string

// Game is the persisted state of a free-play board: the grid plus whose
// turn it is. Moves are validated and applied by the chess engine; storage
// only ever sees whole-board snapshots.
type Game struct {
	ID            GameID
	PlayerID      PlayerID
	Board         Board
	CurrentPlayer Color
	Won           bool // a king has been captured
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SessionID uniquely identifies a puzzle session
type SessionID string

// PuzzleSession is the persisted state of one attempt at a puzzle: the
// live board, the full solution line, and the step cursor. CurrentStep
// always satisfies 0 <= CurrentStep <= len(Moves); the puzzle is solved
// exactly when they are equal.
type PuzzleSession struct {
	ID            SessionID
	PlayerID      PlayerID
	PuzzleID      PuzzleID
	Board         Board
	CurrentPlayer Color
	Moves         []Move
	CurrentStep   int
	Rating        int
	HintUsed      bool
	AwaitingReply bool // a scripted opponent move is pending after a correct guess
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
