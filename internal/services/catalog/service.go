package catalog

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/eslteam/chesstutor/internal/dependencies/random"
	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/storage"
)

// Service loads and serves the puzzle catalog. Puzzle databases are
// comma-delimited text files, one puzzle per line; lines that fail to
// parse or that need unimplemented rules (castling, en passant) are
// skipped rather than failing the whole load.
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new catalog Service
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// LoadFromFile reads a puzzle database file, keeps the playable records,
// and saves them to storage.
func (s *Service) LoadFromFile(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var (
		puzzles []*model.PuzzleRecord
		skipped int
	)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		record, err := model.ParsePuzzleRecord(line)
		if err != nil {
			skipped++
			continue
		}
		if !record.IsPlayable() {
			skipped++
			continue
		}
		puzzles = append(puzzles, record)
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	if err := s.storage.SavePuzzles(ctx, puzzles); err != nil {
		return 0, err
	}

	s.logger.Info("puzzle catalog loaded",
		slog.String("path", path),
		slog.Int("loaded", len(puzzles)),
		slog.Int("skipped", skipped),
	)

	return len(puzzles), nil
}

// LoadRecords saves already-parsed records directly (useful for testing)
func (s *Service) LoadRecords(ctx context.Context, puzzles []*model.PuzzleRecord) error {
	return s.storage.SavePuzzles(ctx, puzzles)
}

// GetPuzzle retrieves a puzzle by id
func (s *Service) GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.PuzzleRecord, error) {
	return s.storage.GetPuzzle(ctx, id)
}

// RandomPuzzle picks a uniformly random puzzle from the loaded catalog
func (s *Service) RandomPuzzle(ctx context.Context) (*model.PuzzleRecord, error) {
	ids, err := s.storage.ListPuzzleIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, model.ErrCatalogEmpty
	}

	id := ids[s.random.Intn(len(ids))]
	return s.storage.GetPuzzle(ctx, id)
}

// Size returns the number of loaded puzzles
func (s *Service) Size(ctx context.Context) (int, error) {
	ids, err := s.storage.ListPuzzleIDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
