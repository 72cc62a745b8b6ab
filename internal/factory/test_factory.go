package factory

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/eslteam/chesstutor/internal/dependencies/mocks"
	"github.com/eslteam/chesstutor/internal/model"
	"github.com/eslteam/chesstutor/internal/services/auth"
	"github.com/eslteam/chesstutor/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// testPuzzleLines is a small catalog for tests, in the same record format
// the file loader reads. All entries are playable puzzles.
var testPuzzleLines = []string{
	"00sHx,q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B1PP1b2/B5PP/5K2 b - - 1 17," +
		"e8d7 a2e6 d7d8 f7f8,1760,80,83,72,mate mateIn2 middlegame short,url",
	"rkend,3r2k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1," +
		"d8d1 g1f1,1143,76,88,1200,endgame short,url",
	"qside,4k3/p7/8/8/8/8/8/Q3K3 w - - 0 1," +
		"a1h8 e8d7,981,75,90,640,endgame short,url",
}

// LoadTestPuzzles loads the embedded test catalog
func (t *TestApp) LoadTestPuzzles(ctx context.Context) error {
	records := make([]*model.PuzzleRecord, 0, len(testPuzzleLines))
	for _, line := range testPuzzleLines {
		record, err := model.ParsePuzzleRecord(line)
		if err != nil {
			return err
		}
		records = append(records, record)
	}
	return t.CatalogService.LoadRecords(ctx, records)
}
