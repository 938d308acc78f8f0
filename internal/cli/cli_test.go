package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCells(t *testing.T) {
	cells, err := parseCells([]string{"3,4", " 3, 5", "10,0"})
	require.NoError(t, err)
	assert.Equal(t, []Cell{{3, 4}, {3, 5}, {10, 0}}, cells)

	for _, bad := range []string{"3", "3,4,5", "a,1", "1,b"} {
		_, err := parseCells([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestRenderRound(t *testing.T) {
	out := renderRound(Round{
		ID:            "r1",
		CategoryID:    "pets",
		State:         "active",
		Rows:          2,
		Cols:          3,
		Letters:       []string{"CAT", "XYZ"},
		Words:         []string{"CAT", "DOG"},
		FoundWords:    []string{"CAT"},
		FoundCells:    []Cell{{0, 0}, {0, 1}, {0, 2}},
		Selection:     []Cell{{1, 0}},
		RemainingText: "01:30",
		ScoreText:     "Score: 1/2",
	})

	assert.Contains(t, out, "Round: r1 (pets)")
	assert.Contains(t, out, "Time: 01:30  Score: 1/2")
	assert.Contains(t, out, "  0  c  a  t \n")
	assert.Contains(t, out, "  1 [X] Y  Z \n")
	assert.Contains(t, out, "Words: (CAT) DOG")
}

func TestClientDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(HealthResult{Status: "ok"})
		case "/fail":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"code":"ROUND_FINISHED","message":"Round is already finished"}}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", "tok")

	var health HealthResult
	require.NoError(t, c.Get("/ok", &health))
	assert.Equal(t, "ok", health.Status)

	err := c.Post("/fail", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Round is already finished (ROUND_FINISHED)", err.Error())

	err = c.Get("/other", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestConfigTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	c := &Config{TokenFile: path}

	require.NoError(t, c.LoadToken())
	assert.Empty(t, c.Token)

	require.NoError(t, c.SaveToken("sess_abc"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := &Config{TokenFile: path}
	require.NoError(t, loaded.LoadToken())
	assert.Equal(t, "sess_abc", loaded.Token)
}
