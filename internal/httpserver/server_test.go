package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/db"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
)

type harness struct {
	t     *testing.T
	srv   *Server
	store store.Store
}

func newHarness(t *testing.T, mutate ...func(*Options)) *harness {
	t.Helper()
	tr, err := assets.DecisionTree()
	require.NoError(t, err)
	st := store.NewMemoryStore(0)
	o := Options{Tree: tr, Store: st, Secret: "test-secret", SessionTTL: time.Hour, ClientOrigin: "http://localhost:5173"}
	for _, m := range mutate {
		m(&o)
	}
	return &harness{t: t, srv: New(o), store: o.Store}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var rd io.Reader
	if raw, ok := body.(string); ok {
		rd = strings.NewReader(raw)
	} else if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (h *harness) start() (string, solver.Outcome) {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/session", "", nil)
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())
	var res startRes
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(h.t, res.Token)
	require.NotNil(h.t, res.ExpiresAt)
	return res.Token, res.Outcome
}

func (h *harness) submit(token, fb string) (int, solver.Outcome) {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/session/feedback", token, feedbackReq{Feedback: fb})
	var out solver.Outcome
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body["error"]
}

func TestServer_Health(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		OK    bool       `json:"ok"`
		Tree  string     `json:"tree"`
		Stats tree.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, h.srv.treeID, body.Tree)
	assert.Equal(t, tree.Stats{Depth: 4, Guesses: 25, Terminal: 16}, body.Stats)
}

func TestServer_PlayToWin(t *testing.T) {
	h := newHarness(t)
	tok, out := h.start()
	assert.Equal(t, solver.StatusOptimal, out.Status)
	assert.Equal(t, "place", out.Guess)

	steps := []struct {
		fb     string
		status solver.Status
		guess  string
	}{
		{"BBGBG", solver.StatusOptimal, "shame"},
		{"gbgbg", solver.StatusOptimal, "snare"},
		{"GBGGG", solver.StatusWinningNext, "stare"},
		{"GGGGG", solver.StatusWon, ""},
	}
	for _, st := range steps {
		code, out := h.submit(tok, st.fb)
		require.Equal(t, http.StatusOK, code, st.fb)
		assert.Equal(t, st.status, out.Status, st.fb)
		assert.Equal(t, st.guess, out.Guess, st.fb)
	}

	rec := h.do(http.MethodGet, "/session", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cur solver.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cur))
	assert.Equal(t, solver.StatusWon, cur.Status)
}

func TestServer_InvalidFeedback(t *testing.T) {
	h := newHarness(t)
	tok, _ := h.start()

	code, out := h.submit(tok, "GGXGG")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, solver.StatusInvalidFeedback, out.Status)

	code, out = h.submit(tok, "BBGBG")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "shame", out.Guess)

	rec := h.do(http.MethodPost, "/session/feedback", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", errorCode(t, rec))
}

func TestServer_NoGuessRecoversAcrossRequests(t *testing.T) {
	h := newHarness(t)
	tok, _ := h.start()

	code, out := h.submit(tok, "YYYYY")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, solver.StatusNoGuess, out.Status)

	_, out = h.submit(tok, "GGGBG")
	assert.Equal(t, solver.StatusOptimal, out.Status)
	assert.Equal(t, "plane", out.Guess)
}

func TestServer_Reset(t *testing.T) {
	h := newHarness(t)
	tok, _ := h.start()
	h.submit(tok, "BBGBG")

	rec := h.do(http.MethodPost, "/session/reset", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out solver.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "place", out.Guess)
	assert.Empty(t, out.Path)
}

func TestServer_Tokens(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_token", errorCode(t, rec))

	rec = h.do(http.MethodGet, "/session", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", errorCode(t, rec))

	// Same secret and store, different tree: the session is stale.
	tok, _ := h.start()
	other, err := tree.Parse([]byte(`{"root": ["crane", {}]}`), tree.FormatJSON)
	require.NoError(t, err)
	h2 := newHarness(t, func(o *Options) { o.Tree = other; o.Store = h.store })
	rec = h2.do(http.MethodGet, "/session", tok, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "tree_changed", errorCode(t, rec))

	// Different secret: signature check fails.
	h3 := newHarness(t, func(o *Options) { o.Secret = "other"; o.Store = h.store })
	rec = h3.do(http.MethodGet, "/session", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_ExpiredToken(t *testing.T) {
	h := newHarness(t)
	tok, _ := h.start()

	h.srv.tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	rec := h.do(http.MethodGet, "/session", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_DeleteSession(t *testing.T) {
	h := newHarness(t)
	tok, _ := h.start()

	rec := h.do(http.MethodDelete, "/session", tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(http.MethodGet, "/session", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "session_not_found", errorCode(t, rec))
}

func TestServer_SessionPersistedAsSnapshot(t *testing.T) {
	h := newHarness(t)
	tok, _ := h.start()
	h.submit(tok, "BBGBG")

	id, err := h.srv.tokens.verify(tok)
	require.NoError(t, err)
	rec, err := h.store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, h.srv.treeID, rec.Tree)
	assert.Equal(t, "BBGBG", string(rec.Cursor.Path[0]))
	assert.True(t, rec.Cursor.Issued)
	assert.False(t, rec.UpdatedAt.Before(rec.CreatedAt))
}

func TestServer_Trials(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/trials", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	h = newHarness(t, func(o *Options) { o.DB = sqlDB })
	ctx := context.Background()
	_, err = db.InsertTrial(ctx, sqlDB, trial.Summary{Tree: h.srv.treeID, Answers: 25, Solved: 25})
	require.NoError(t, err)
	_, err = db.InsertTrial(ctx, sqlDB, trial.Summary{Tree: "elsewhere", Answers: 3})
	require.NoError(t, err)

	var runs []db.TrialRun
	rec = h.do(http.MethodGet, "/trials", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, h.srv.treeID, runs[0].Tree)

	rec = h.do(http.MethodGet, "/trials?tree=all&limit=5", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 2)
}

func TestServer_Metrics(t *testing.T) {
	h := newHarness(t)
	tok, _ := h.start()
	h.submit(tok, "YYYYY")

	rec := h.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "wordle_solver_sessions_started_total 1")
	assert.Contains(t, body, `wordle_solver_outcomes_total{status="no_guess"} 1`)
	assert.Contains(t, body, `wordle_solver_outcomes_total{status="optimal"} 1`)
}

func TestServer_CORSAndNotFound(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodOptions, "/session", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = h.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"/nope"`)
}

func TestServer_FeedbackAuthBeforeBody(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/session/feedback", "", "{not json")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_token", errorCode(t, rec))

	tok, _ := h.start()
	huge := `{"feedback":"` + strings.Repeat("G", maxBodyBytes) + `"}`
	rec = h.do(http.MethodPost, "/session/feedback", tok, huge)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", errorCode(t, rec))

	// The session is untouched and still accepts feedback.
	code, out := h.submit(tok, "BBGBG")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "shame", out.Guess)
}

func TestServer_TrialsLimitIsBounded(t *testing.T) {
	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	h := newHarness(t, func(o *Options) { o.DB = sqlDB })

	var runs []db.TrialRun
	rec := h.do(http.MethodGet, "/trials?limit=35184372088832", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	ctx := context.Background()
	for i := 0; i < db.DefaultTrialLimit+3; i++ {
		_, err := db.InsertTrial(ctx, sqlDB, trial.Summary{Tree: h.srv.treeID, Answers: 1, Solved: 1})
		require.NoError(t, err)
	}

	for _, q := range []string{"35184372088832", "99999999999999999999999", "-4", "abc"} {
		rec = h.do(http.MethodGet, "/trials?limit="+q, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, q)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
		assert.Len(t, runs, db.DefaultTrialLimit, q)
	}

	rec = h.do(http.MethodGet, "/trials?limit=2", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 2)
}
