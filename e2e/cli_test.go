package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/connectfour-go/internal/api"
	"github.com/mcoot/connectfour-go/internal/api/response"
	"github.com/mcoot/connectfour-go/internal/factory"
	"github.com/mcoot/connectfour-go/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "c4-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/c4")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithInput(input string, args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, args...)
	cmd.Stdin = strings.NewReader(input)
	output, err := cmd.Output()
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
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app, err := factory.New(factory.Config{StorageType: factory.StorageTypeMemory})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := mux.NewRouter()
	api.Mount(router, api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
	})
	web.Mount(router, web.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
	})

	server := api.NewServer(router, api.DefaultServerConfig(), logger)

	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
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

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp response.Health
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_FullGame(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create game
	output, err := cli.run("game", "new", "--player1", "Alice", "--color1", "red", "--player2", "Bob", "--color2", "blue")
	require.NoError(t, err, "output: %s", output)

	var game response.Game
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	require.NotEmpty(t, game.ID)
	assert.Equal(t, "in_progress", game.Status)
	assert.Equal(t, 1, game.CurrentPlayer)

	// Alice stacks column 1, Bob answers in column 2
	var drop response.DropResponse
	for i, col := range []string{"1", "2", "1", "2", "1", "2", "1"} {
		output, err = cli.run("game", "drop", game.ID, col)
		require.NoError(t, err, "move %d output: %s", i, output)
		require.NoError(t, json.Unmarshal([]byte(output), &drop))
	}
	assert.Equal(t, "won", drop.Result.Outcome)
	assert.Equal(t, "won", drop.Game.Status)
	require.NotNil(t, drop.Game.Winner)
	assert.Equal(t, 1, *drop.Game.Winner)

	// Further moves are rejected
	output, err = cli.run("game", "drop", game.ID, "3")
	require.Error(t, err)
	assert.Contains(t, output, "GAME_OVER")

	// Fetch shows the finished game
	output, err = cli.run("game", "get", game.ID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.True(t, game.GameOver)
	assert.Equal(t, 7, game.MoveCount)

	// Rematch keeps the players
	output, err = cli.run("game", "rematch", game.ID)
	require.NoError(t, err, "output: %s", output)

	var rematch response.Game
	require.NoError(t, json.Unmarshal([]byte(output), &rematch))
	assert.NotEqual(t, game.ID, rematch.ID)
	assert.Equal(t, "Bob", rematch.Players[1].Name)
	assert.Equal(t, "blue", rematch.Players[1].Color)
	assert.Zero(t, rematch.MoveCount)

	// The web page renders the CLI's game
	resp, err := http.Get(ts.addr + "/game/" + rematch.ID)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Alice")
}

func TestCLI_Errors(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "get", "no-such-game")
	require.Error(t, err)
	assert.Contains(t, output, "GAME_NOT_FOUND")

	output, err = cli.run("game", "new")
	require.NoError(t, err, "output: %s", output)

	var game response.Game
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	output, err = cli.run("game", "drop", game.ID, "99")
	require.Error(t, err)
	assert.Contains(t, output, "INVALID_COLUMN")
}

func TestCLI_Play(t *testing.T) {
	cli := newCLIRunner(t, "")

	output, err := cli.runWithInput("1\n2\n1\n2\n1\n2\n1\nn\n", "play", "--player1", "Alice", "--player2", "Bob")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Alice won!")
}
