package rating

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/eslteam/chesstutor/internal/dependencies/clock"
	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/storage"
)

// kFactor is the Elo K-factor applied to every puzzle result.
const kFactor = 32

// Service tracks player Elo across puzzle attempts. Each finished puzzle
// is scored as a one-game match against an opponent rated at the puzzle's
// difficulty: solving cleanly is a win, solving with any hint is a loss.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new rating Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// GetRating returns the player's rating, creating the default for players
// who have not finished a puzzle yet.
func (s *Service) GetRating(ctx context.Context, playerID model.PlayerID) (*model.PlayerRating, error) {
	rating, err := s.storage.GetRating(ctx, playerID)
	if err == nil {
		return rating, nil
	}
	if !errors.Is(err, model.ErrRatingNotFound) {
		return nil, err
	}

	rating = &model.PlayerRating{
		PlayerID:  playerID,
		Elo:       model.DefaultElo,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveRating(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// RecordResult applies a finished puzzle to the player's Elo and returns
// the updated rating.
func (s *Service) RecordResult(ctx context.Context, playerID model.PlayerID, puzzleElo int, hintUsed bool) (*model.PlayerRating, error) {
	rating, err := s.GetRating(ctx, playerID)
	if err != nil {
		return nil, err
	}

	score := 1.0
	if hintUsed {
		score = 0.0
	}

	rating.Elo = NewElo(rating.Elo, puzzleElo, score)
	rating.PuzzlesSolved++
	if hintUsed {
		rating.HintsUsed++
	}
	rating.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveRating(ctx, rating); err != nil {
		return nil, err
	}

	s.logger.Info("rating updated",
		slog.String("player_id", string(playerID)),
		slog.Int("puzzle_elo", puzzleElo),
		slog.Bool("hint_used", hintUsed),
		slog.Int("new_elo", rating.Elo),
	)

	return rating, nil
}

// NewElo computes the post-game rating for a single game against an
// opponent at opponentElo, where score is 1 for a win and 0 for a loss.
func NewElo(playerElo, opponentElo int, score float64) int {
	expected := 1.0 / (1.0 + math.Pow(10, float64(opponentElo-playerElo)/400.0))
	return playerElo + int(math.Round(kFactor*(score-expected)))
}
