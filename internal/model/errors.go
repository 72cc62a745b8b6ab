package model

import "errors"

// Common errors used across the application.
//
// These are all construction-time or lookup failures. Gameplay rejection
// (illegal move, wrong-turn piece, wrong puzzle guess) is deliberately not
// an error: those paths return booleans and leave state untouched.
var (
	// Notation and record parsing errors
	ErrInvalidSquare   = errors.New("invalid square")
	ErrInvalidMove     = errors.New("invalid move")
	ErrInvalidPosition = errors.New("invalid position string")
	ErrMalformedRecord = errors.New("malformed puzzle record")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrRatingNotFound = errors.New("rating not found")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Puzzle errors
	ErrSessionNotFound = errors.New("puzzle session not found")
	ErrPuzzleNotFound  = errors.New("puzzle not found")
	ErrCatalogEmpty    = errors.New("puzzle catalog is empty")
)
