package model

import (
	"fmt"
	"strings"
)

// Move is a (from, to) square pair.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// ParseMove parses a four-character coordinate token such as "e2e4".
func ParseMove(token string) (Move, error) {
	if len(token) != 4 {
		return Move{}, fmt.Errorf("%w: token %q must be 4 characters", ErrInvalidMove, token)
	}
	from, err := ParseSquare(token[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: token %q: %v", ErrInvalidMove, token, err)
	}
	to, err := ParseSquare(token[2:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: token %q: %v", ErrInvalidMove, token, err)
	}
	return Move{From: from, To: to}, nil
}

// ParseMoveList parses a space-separated list of coordinate tokens into the
// ordered move sequence consumed by the puzzle step cursor.
func ParseMoveList(moves string) ([]Move, error) {
	fields := strings.Fields(moves)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty move list", ErrInvalidMove)
	}
	parsed := make([]Move, len(fields))
	for i, token := range fields {
		mv, err := ParseMove(token)
		if err != nil {
			return nil, err
		}
		parsed[i] = mv
	}
	return parsed, nil
}

// String implements fmt.Stringer for logging.
func (m Move) String() string {
	return m.From.Algebraic() + m.To.Algebraic()
}
