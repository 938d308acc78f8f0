package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordhunt/internal/api"
	"github.com/mcoot/wordhunt/internal/factory"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/testutil"
)

const testAddress = "0x00000000000000000000000000000000000000aa"

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
	binaryPath := filepath.Join(projectRoot, "bin", "wordhunt-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/wordhunt")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
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
	app      *factory.App
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

	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)
	require.NoError(t, app.LoadCategories(context.Background(), ""))

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		CategoryService: app.CategoryService,
		RoundController: app.RoundController,
		RewardClient:    app.RewardClient,
		HubManager:      app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		app:  app,
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

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
		Address     string `json:"address"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type roundResponse struct {
	ID           string   `json:"id"`
	CategoryID   string   `json:"category_id"`
	State        string   `json:"state"`
	EndReason    string   `json:"end_reason"`
	Rows         int      `json:"rows"`
	Cols         int      `json:"cols"`
	Letters      []string `json:"letters"`
	Words        []string `json:"words"`
	FoundWords   []string `json:"found_words"`
	CorrectCount int      `json:"correct_count"`
	TotalWords   int      `json:"total_words"`
}

type selectionResponse struct {
	Outcome string        `json:"outcome"`
	Matched *string       `json:"matched"`
	Round   roundResponse `json:"round"`
}

type claimResponse struct {
	Points  int    `json:"points"`
	Balance int    `json:"balance"`
	Address string `json:"address"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func cellArgs(path []model.Position) []string {
	args := make([]string, len(path))
	for i, p := range path {
		args[i] = fmt.Sprintf("%d,%d", p.Row, p.Col)
	}
	return args
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

	// Token is saved in the token file
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		Address     string `json:"address"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, authResp.Player.ID, player.ID)
	assert.Empty(t, player.Address)

	// Balance needs an address
	_, err = cli.run("player", "balance")
	assert.Error(t, err)

	output, err = cli.run("player", "address", testAddress)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, testAddress, player.Address)

	output, err = cli.run("player", "balance")
	require.NoError(t, err, "output: %s", output)
	var balance struct {
		Address string `json:"address"`
		Balance int    `json:"balance"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &balance))
	assert.Equal(t, 0, balance.Balance)
}

func TestCLI_CategoryCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("category", "list")
	require.NoError(t, err, "output: %s", output)

	var categories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &categories))
	require.NotEmpty(t, categories)

	output, err = cli.run("category", "show", categories[0].ID)
	require.NoError(t, err, "output: %s", output)

	var category struct {
		ID    string   `json:"id"`
		Words []string `json:"words"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &category))
	assert.Equal(t, categories[0].ID, category.ID)
	assert.NotEmpty(t, category.Words)

	_, err = cli.run("category", "show", "no-such-category")
	assert.Error(t, err)
}

func TestCLI_FullRoundFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice", "--address", testAddress)
	require.NoError(t, err, "output: %s", output)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	token := auth.SessionToken

	// Start a round in a random category
	output, err = cli.runWithToken(token, "round", "start")
	require.NoError(t, err, "output: %s", output)
	var started roundResponse
	require.NoError(t, json.Unmarshal([]byte(output), &started))
	assert.Equal(t, "active", started.State)
	assert.NotEmpty(t, started.CategoryID)
	assert.Len(t, started.Letters, started.Rows)
	t.Logf("Started round %s in %s", started.ID, started.CategoryID)

	// Claiming before the round ends is refused
	_, err = cli.runWithToken(token, "round", "claim", started.ID)
	assert.Error(t, err)

	// Look up the hidden paths from the server side
	rd, err := ts.app.RoundController.GetRound(context.Background(), model.RoundID(started.ID))
	require.NoError(t, err)
	require.NotEmpty(t, rd.Words)

	// A two-cell drag never matches a word of three or more letters
	first := rd.Words[0]
	if len(first.Path) > 2 {
		args := append([]string{"round", "select", started.ID}, cellArgs(first.Path[:2])...)
		output, err = cli.runWithToken(token, args...)
		require.NoError(t, err, "output: %s", output)
		var miss selectionResponse
		require.NoError(t, json.Unmarshal([]byte(output), &miss))
		assert.Nil(t, miss.Matched)
		assert.Equal(t, 0, miss.Round.CorrectCount)
	}

	var last selectionResponse
	for i, w := range rd.Words {
		args := append([]string{"round", "select", started.ID}, cellArgs(w.Path)...)
		output, err = cli.runWithToken(token, args...)
		require.NoError(t, err, "output: %s", output)
		require.NoError(t, json.Unmarshal([]byte(output), &last))
		require.NotNil(t, last.Matched, "word %s", w.Word)
		assert.Equal(t, w.Word, *last.Matched)
		assert.Equal(t, i+1, last.Round.CorrectCount)
	}
	assert.Equal(t, "finished", last.Round.State)
	assert.Equal(t, "completed", last.Round.EndReason)

	// Claim credits the player's address
	output, err = cli.runWithToken(token, "round", "claim", started.ID)
	require.NoError(t, err, "output: %s", output)
	var claim claimResponse
	require.NoError(t, json.Unmarshal([]byte(output), &claim))
	assert.Equal(t, len(rd.Words), claim.Points)
	assert.Equal(t, claim.Points, claim.Balance)
	assert.Equal(t, testAddress, claim.Address)

	// A second claim is refused
	_, err = cli.runWithToken(token, "round", "claim", started.ID)
	assert.Error(t, err)
}

func TestCLI_RoundAbandon(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Bob")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("round", "start")
	require.NoError(t, err, "output: %s", output)
	var started roundResponse
	require.NoError(t, json.Unmarshal([]byte(output), &started))

	output, err = cli.run("round", "abandon", started.ID)
	require.NoError(t, err, "output: %s", output)
	var ended roundResponse
	require.NoError(t, json.Unmarshal([]byte(output), &ended))
	assert.Equal(t, "finished", ended.State)
	assert.Equal(t, "abandoned", ended.EndReason)

	// Selections on a finished round fail
	_, err = cli.run("round", "select", started.ID, "0,0", "0,1")
	assert.Error(t, err)
}
