package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/modelscore/pkg/evidence"
	"github.com/mchmarny/modelscore/pkg/hub"
	"github.com/mchmarny/modelscore/pkg/metric"
	"github.com/mchmarny/modelscore/pkg/store"
)

func TestNewApp(t *testing.T) {
	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, name, app.Name)

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Contains(t, names, "score")
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "auth")
}

func TestEncode(t *testing.T) {
	type row struct {
		Name  string  `json:"name" yaml:"name"`
		Score float64 `json:"score" yaml:"score"`
	}
	v := row{Name: "demo", Score: 0.5}

	var buf bytes.Buffer
	outputFormat = formatJSON
	require.NoError(t, encode(&buf, v))
	assert.JSONEq(t, `{"name":"demo","score":0.5}`, buf.String())

	buf.Reset()
	outputFormat = formatYAML
	require.NoError(t, encode(&buf, v))
	assert.Contains(t, buf.String(), "name: demo")
	outputFormat = formatJSON
}

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://huggingface.co/org/model\n\n# comment\nhttps://github.com/org/repo\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	urls, err := readURLFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://huggingface.co/org/model",
		"https://github.com/org/repo",
	}, urls)
}

func TestReadURLFileMissing(t *testing.T) {
	_, err := readURLFile(filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}

func TestScoreParallelism(t *testing.T) {
	n := scoreParallelism()
	assert.Greater(t, n, 0)
	assert.LessOrEqual(t, n, maxScoreParallelism)
}

func testServerDeps(t *testing.T) (*metric.Scorer, *store.Store) {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	scorer := &metric.Scorer{
		Evidence: &evidence.Locator{},
		Hub:      &hub.Client{BaseURL: srv.URL, HTTP: srv.Client()},
	}

	st, err := store.Open(filepath.Join(t.TempDir(), store.DataFileName))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return scorer, st
}

func TestServeHealth(t *testing.T) {
	scorer, st := testServerDeps(t)
	router := makeRouter(scorer, st, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestServeScore(t *testing.T) {
	scorer, st := testServerDeps(t)
	router := makeRouter(scorer, st, false)

	body := strings.NewReader(`{"url":"https://huggingface.co/org/model"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var r metric.Rating
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, "org/model", r.Name)
	assert.Equal(t, "MODEL", r.Category)

	// second request is served from cache
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"url":"https://huggingface.co/org/model"}`))
	req2.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestServeScoreBadRequest(t *testing.T) {
	scorer, st := testServerDeps(t)
	router := makeRouter(scorer, st, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
