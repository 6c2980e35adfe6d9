// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle solver.
// Responsibilities:
//   - Router + middleware (request IDs, access log, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Session endpoints: POST /session, GET/DELETE /session,
//     POST /session/feedback, POST /session/reset.
//   - Trial history: GET /trials (when a database is configured).
//
// Notes:
//   - The decision tree is loaded once and shared read-only by all sessions.
//   - Each request rebuilds the session's walker from its stored snapshot,
//     applies one step, and saves the new snapshot.
//   - Clients hold a signed session token (Authorization: Bearer <token>).
//     Tokens minted for another tree are rejected with 409 tree_changed.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/db"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
	"github.com/robalobadob/wordle/apps/go-solver/internal/walker"
)

// Options configure a Server.
type Options struct {
	Tree         *tree.Tree    // required
	Store        store.Store   // required
	DB           *sql.DB       // optional; enables /trials
	Secret       string        // session token signing key
	SessionTTL   time.Duration // token lifetime; 0 means no expiry
	ClientOrigin string        // CORS origin
}

// Server bundles router, shared tree, session store and DB handle.
type Server struct {
	r       *chi.Mux
	tree    *tree.Tree
	treeID  string
	stats   tree.Stats
	store   store.Store
	db      *sql.DB
	tokens  *tokens
	metrics *metrics
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(o Options) *Server {
	fp := tree.Fingerprint(o.Tree)
	s := &Server{
		r:       chi.NewRouter(),
		tree:    o.Tree,
		treeID:  fp,
		stats:   tree.Inspect(o.Tree),
		store:   o.Store,
		db:      o.DB,
		tokens:  &tokens{secret: []byte(o.Secret), ttl: o.SessionTTL, tree: fp, now: time.Now},
		metrics: newMetrics(),
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped zerolog logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(o.ClientOrigin))            // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/metrics", "POST /session", "GET /session", "DELETE /session",
				"POST /session/feedback", "POST /session/reset", "GET /trials",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "tree": s.treeID, "stats": s.stats})
	})
	s.r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	// --- sessions ---
	s.r.Post("/session", s.handleStart)
	s.r.Get("/session", s.handleCurrent)
	s.r.Delete("/session", s.handleDelete)
	s.r.Post("/session/feedback", s.handleFeedback)
	s.r.Post("/session/reset", s.handleReset)

	// --- trial history ---
	s.r.Get("/trials", s.handleTrials)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Handler exposes the router (useful for tests and custom http.Server setups).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin; empty origin disables it.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if origin == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one debug line per request through the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", chimw.GetReqID(r.Context())).
		Int("status", status).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ SESSIONS -----------------------------------

type startRes struct {
	Token     string         `json:"token"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
	Outcome   solver.Outcome `json:"outcome"`
}

// handleStart creates a session positioned at the opening guess.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	sess := solver.New(walker.New(s.tree), false)
	out := sess.Start()

	now := s.now().UTC()
	rec := &store.Record{ID: id, Tree: s.treeID, CreatedAt: now}
	if err := s.save(r.Context(), rec, sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", id).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.sign(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	s.metrics.sessions.Inc()
	s.metrics.observe(out)
	hlog.FromRequest(r).Info().Str("session", id).Str("guess", out.Guess).Msg("session started")

	res := startRes{Token: tok, Outcome: out}
	if !exp.IsZero() {
		res.ExpiresAt = &exp
	}
	writeJSON(w, http.StatusCreated, res)
}

// handleCurrent re-reads the current guess without changing the session.
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Start())
}

// handleDelete ends a session.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	rec, _, ok := s.load(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), rec.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// maxBodyBytes bounds request bodies; a feedback payload is a few bytes.
const maxBodyBytes = 4 << 10

type feedbackReq struct {
	Feedback string `json:"feedback"`
}

// handleFeedback applies one round of feedback and returns the next outcome.
// Invalid feedback answers 400 with the outcome; a missing tree branch is a
// normal 200 outcome with status no_guess.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	rec, sess, ok := s.load(w, r)
	if !ok {
		return
	}
	var req feedbackReq
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	out := sess.Submit(req.Feedback)
	s.metrics.observe(out)
	if out.Status == solver.StatusInvalidFeedback {
		writeJSON(w, http.StatusBadRequest, out)
		return
	}
	if err := s.save(r.Context(), rec, sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", rec.ID).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if out.Status == solver.StatusNoGuess {
		hlog.FromRequest(r).Warn().Str("session", rec.ID).Interface("path", out.Path).Msg("no guess for feedback")
	}
	writeJSON(w, http.StatusOK, out)
}

// handleReset rewinds a session to the opening guess.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	rec, sess, ok := s.load(w, r)
	if !ok {
		return
	}
	out := sess.Reset()
	s.metrics.observe(out)
	if err := s.save(r.Context(), rec, sess); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// load resolves the bearer token to a stored record and a live session.
// On failure it writes the error response and returns ok=false.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*store.Record, *solver.Session, bool) {
	tok := bearer(r)
	if tok == "" {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return nil, nil, false
	}
	id, err := s.tokens.verify(tok)
	if errors.Is(err, errTreeChanged) {
		writeError(w, http.StatusConflict, "tree_changed")
		return nil, nil, false
	}
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return nil, nil, false
	}
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found")
		return nil, nil, false
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", id).Msg("load session")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, nil, false
	}
	if rec.Tree != s.treeID {
		writeError(w, http.StatusConflict, "tree_changed")
		return nil, nil, false
	}
	wk, err := walker.Restore(s.tree, rec.Cursor)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("session", id).Msg("restore session")
		writeError(w, http.StatusConflict, "tree_changed")
		return nil, nil, false
	}
	return rec, solver.New(wk, rec.Won), true
}

func (s *Server) save(ctx context.Context, rec *store.Record, sess *solver.Session) error {
	rec.Cursor = sess.Walker().Snapshot()
	rec.Won = sess.Won()
	rec.UpdatedAt = s.now().UTC()
	return s.store.Save(ctx, rec)
}

// ------------------------------- TRIALS ------------------------------------

// handleTrials lists recent trial runs. Query: ?tree=<fingerprint|all>&limit=N.
// Defaults to runs against the tree this server is serving. A limit outside
// 1..db.MaxTrialLimit falls back to db.DefaultTrialLimit.
func (s *Server) handleTrials(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "trials_disabled")
		return
	}
	fp := r.URL.Query().Get("tree")
	switch fp {
	case "":
		fp = s.treeID
	case "all":
		fp = ""
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > db.MaxTrialLimit {
		limit = db.DefaultTrialLimit
	}
	runs, err := db.RecentTrials(r.Context(), s.db, fp, limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list trials")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if runs == nil {
		runs = []db.TrialRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
