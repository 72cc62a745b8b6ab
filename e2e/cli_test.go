package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslteam/chesstutor/internal/api"
	"github.com/eslteam/chesstutor/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "chesstutor-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/chesstutor")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	projectRoot := findProjectRoot(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	// Load the puzzle catalog
	_, err = app.CatalogService.LoadFromFile(context.Background(), filepath.Join(projectRoot, "data/puzzles.csv"))
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		RatingService:    app.RatingService,
		GameController:   app.GameController,
		PuzzleController: app.PuzzleController,
		HubManager:       app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type ratingResponse struct {
	Elo           int `json:"elo"`
	PuzzlesSolved int `json:"puzzles_solved"`
	HintsUsed     int `json:"hints_used"`
}

type gameResponse struct {
	ID            string       `json:"id"`
	Board         [8][8]string `json:"board"`
	CurrentPlayer string       `json:"current_player"`
	Won           bool         `json:"won"`
}

type moveResponse struct {
	Accepted bool         `json:"accepted"`
	Game     gameResponse `json:"game"`
}

type sessionResponse struct {
	ID            string `json:"id"`
	PuzzleID      string `json:"puzzle_id"`
	CurrentPlayer string `json:"current_player"`
	CurrentStep   int    `json:"current_step"`
	TotalSteps    int    `json:"total_steps"`
	Solved        bool   `json:"solved"`
	AwaitingReply bool   `json:"awaiting_reply"`
	HintUsed      bool   `json:"hint_used"`
}

type guessResponse struct {
	Correct bool            `json:"correct"`
	Solved  bool            `json:"solved"`
	Session sessionResponse `json:"session"`
	Rating  *ratingResponse `json:"rating"`
}

type hintResponse struct {
	Available bool   `json:"available"`
	Square    string `json:"square"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)

	// Rating starts at the default
	output, err = cli.run("player", "rating")
	require.NoError(t, err, "output: %s", output)

	var rating ratingResponse
	require.NoError(t, json.Unmarshal([]byte(output), &rating))
	assert.Equal(t, 800, rating.Elo)
	assert.Equal(t, 0, rating.PuzzlesSolved)
}

func TestCLI_GameCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	token := authResp.SessionToken

	// Create a game
	output, err = cli.runWithToken(token, "game", "create")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "white", game.CurrentPlayer)
	gameID := game.ID

	// Play a legal move
	output, err = cli.runWithToken(token, "game", "move", gameID, "e2e4")
	require.NoError(t, err, "output: %s", output)

	var move moveResponse
	require.NoError(t, json.Unmarshal([]byte(output), &move))
	assert.True(t, move.Accepted)
	assert.Equal(t, "black", move.Game.CurrentPlayer)
	assert.Equal(t, "P", move.Game.Board[4][4])

	// An illegal move is rejected but is not a CLI error
	output, err = cli.runWithToken(token, "game", "move", gameID, "e8e4")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &move))
	assert.False(t, move.Accepted)

	// Load a custom position
	output, err = cli.runWithToken(token, "game", "position", gameID, "8/8/8/8/8/8/8/R7 w")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "R", game.Board[7][0])

	// Reset and delete
	output, err = cli.runWithToken(token, "game", "reset", gameID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "white", game.CurrentPlayer)

	output, err = cli.runWithToken(token, "game", "delete", gameID)
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Game deleted", msgResp.Message)

	_, err = cli.runWithToken(token, "game", "show", gameID)
	assert.Error(t, err, "should not find game after delete")
}

func TestCLI_PuzzleFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	token := authResp.SessionToken

	// Start a session on a known mate-in-two
	output, err = cli.runWithToken(token, "puzzle", "start", "--puzzle", "00sHx")
	require.NoError(t, err, "output: %s", output)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "00sHx", session.PuzzleID)
	assert.Equal(t, 1, session.CurrentStep)
	assert.Equal(t, 4, session.TotalSteps)
	sessionID := session.ID
	t.Logf("Started session %s", sessionID)

	// A wrong guess is reported but the session does not advance
	output, err = cli.runWithToken(token, "puzzle", "guess", sessionID, "f7f8")
	require.NoError(t, err, "output: %s", output)

	var guess guessResponse
	require.NoError(t, json.Unmarshal([]byte(output), &guess))
	assert.False(t, guess.Correct)

	// Ask for a hint, then play the line out
	output, err = cli.runWithToken(token, "puzzle", "hint", sessionID)
	require.NoError(t, err, "output: %s", output)

	var hint hintResponse
	require.NoError(t, json.Unmarshal([]byte(output), &hint))
	assert.True(t, hint.Available)
	assert.Equal(t, "a2", hint.Square)

	output, err = cli.runWithToken(token, "puzzle", "guess", sessionID, "a2e6")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &guess))
	assert.True(t, guess.Correct)
	assert.True(t, guess.Session.AwaitingReply)

	output, err = cli.runWithToken(token, "puzzle", "opponent", sessionID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, 3, session.CurrentStep)

	output, err = cli.runWithToken(token, "puzzle", "guess", sessionID, "f7f8")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &guess))
	assert.True(t, guess.Solved)
	require.NotNil(t, guess.Rating)
	assert.Equal(t, 1, guess.Rating.PuzzlesSolved)
	assert.Equal(t, 1, guess.Rating.HintsUsed)
	t.Logf("Solved with hint, elo now %d", guess.Rating.Elo)

	// Clean up
	output, err = cli.runWithToken(token, "puzzle", "delete", sessionID)
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Session deleted", msgResp.Message)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Get non-existent game
	output, err = cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	output, err = cli.runWithToken(auth.SessionToken, "game", "show", "INVALID")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
