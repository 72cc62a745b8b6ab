package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PuzzleID uniquely identifies a puzzle record
type PuzzleID string

// PuzzleRecord is one entry from a puzzle database file: a position, the
// full scripted solution line (opponent reply first), and metadata.
type PuzzleRecord struct {
	ID     PuzzleID
	FEN    string
	Moves  []Move
	Rating int
	Themes []string
}

// Field layout of a puzzle CSV line (Lichess puzzle database format).
const (
	recordFieldID     = 0
	recordFieldFEN    = 1
	recordFieldMoves  = 2
	recordFieldRating = 3
	recordFieldThemes = 7
	recordMinFields   = 9
)

// ParsePuzzleRecord parses a comma-delimited puzzle line. The line must
// have at least 9 fields; a shorter or unparseable line fails construction.
func ParsePuzzleRecord(line string) (*PuzzleRecord, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < recordMinFields {
		return nil, fmt.Errorf("%w: %d fields, need at least %d", ErrMalformedRecord, len(fields), recordMinFields)
	}

	moves, err := ParseMoveList(fields[recordFieldMoves])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	rating, err := strconv.Atoi(strings.TrimSpace(fields[recordFieldRating]))
	if err != nil {
		return nil, fmt.Errorf("%w: rating %q is not an integer", ErrMalformedRecord, fields[recordFieldRating])
	}

	return &PuzzleRecord{
		ID:     PuzzleID(strings.TrimSpace(fields[recordFieldID])),
		FEN:    fields[recordFieldFEN],
		Moves:  moves,
		Rating: rating,
		Themes: strings.Fields(fields[recordFieldThemes]),
	}, nil
}

// IsPlayable reports whether the engine can present this puzzle faithfully:
// the position must carry no castling rights and the line must not depend
// on en passant, since neither rule is implemented.
func (r *PuzzleRecord) IsPlayable() bool {
	fenFields := strings.Fields(r.FEN)
	if len(fenFields) < 3 || fenFields[2] != "-" {
		return false
	}
	for _, theme := range r.Themes {
		if strings.EqualFold(theme, "enPassant") {
			return false
		}
	}
	return true
}
