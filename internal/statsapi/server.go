// Package statsapi serves a read-only JSON view of the result history, the
// contest catalog and the campaigns being played over SSH.
package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-duel/internal/registry"
	"github.com/vovakirdan/tui-duel/internal/session"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

// MaxLimit caps the number of results a single request may ask for.
const MaxLimit = 500

// ResultStore is the part of the store the API reads.
type ResultStore interface {
	RecentResults(contest string, limit int) ([]storage.Result, error)
	ResultByID(id string) (*storage.Result, error)
	GetAllContestStats() (map[string]*storage.ContestStats, error)
}

// Server handles HTTP requests.
type Server struct {
	store  ResultStore
	live   *session.Live
	logger *log.Logger

	httpServer *http.Server
}

// NewServer creates an API server. live may be nil when nothing is served over SSH.
func NewServer(store ResultStore, live *session.Live, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, live: live, logger: logger}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/contests", s.handleContests)
		r.Get("/results", s.handleResults)
		r.Get("/results/{id}", s.handleResult)
		r.Get("/stats", s.handleStats)
		r.Get("/live", s.handleLive)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.httpServer = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting stats API", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("stopping stats API")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ========== Handlers ==========

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type contestJSON struct {
	ID                  string `json:"id"`
	Order               int    `json:"order"`
	Actor               string `json:"actor"`
	Name                string `json:"name"`
	UpdateDuringOverlay bool   `json:"update_during_overlay"`
	RenderDuringOverlay bool   `json:"render_during_overlay"`
}

// GET /api/v1/contests
func (s *Server) handleContests(w http.ResponseWriter, _ *http.Request) {
	metas := registry.List()
	out := make([]contestJSON, 0, len(metas))
	for _, m := range metas {
		out = append(out, contestJSON{
			ID:                  m.ID(),
			Order:               int(m.Kind),
			Actor:               m.ActorName,
			Name:                m.ContestName,
			UpdateDuringOverlay: m.UpdateDuringOverlay,
			RenderDuringOverlay: m.RenderDuringOverlay,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"contests": out})
}

type resultJSON struct {
	ID         string    `json:"id"`
	Contest    string    `json:"contest"`
	Player     string    `json:"player"`
	Difficulty float64   `json:"difficulty"`
	Seed       int64     `json:"seed"`
	Victory    bool      `json:"victory"`
	DurationMs int64     `json:"duration_ms"`
	HPDelta    int       `json:"hp_delta"`
	GoldDelta  int       `json:"gold_delta"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResultJSON(r storage.Result) resultJSON {
	return resultJSON{
		ID:         r.ID,
		Contest:    r.Contest,
		Player:     r.Player,
		Difficulty: r.Difficulty,
		Seed:       r.Seed,
		Victory:    r.Victory,
		DurationMs: r.DurationMs,
		HPDelta:    r.HPDelta,
		GoldDelta:  r.GoldDelta,
		CreatedAt:  r.CreatedAt,
	}
}

// GET /api/v1/results?contest=&limit=
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	contest := q.Get("contest")
	if contest != "" && !registry.Exists(contest) {
		writeJSON(w, http.StatusBadRequest, errObj("VALIDATION_ERROR", "unknown contest", "contest"))
		return
	}
	limit := 20
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxLimit {
			writeJSON(w, http.StatusBadRequest, errObj("VALIDATION_ERROR", "limit must be 1.."+strconv.Itoa(MaxLimit), "limit"))
			return
		}
		limit = n
	}

	results, err := s.store.RecentResults(contest, limit)
	if err != nil {
		s.logger.Error("query results", "error", err)
		writeJSON(w, http.StatusInternalServerError, errObj("SERVER_ERROR", "failed to query results", ""))
		return
	}
	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, toResultJSON(res))
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

// GET /api/v1/results/{id}
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.ResultByID(chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error("query result", "error", err)
		writeJSON(w, http.StatusInternalServerError, errObj("SERVER_ERROR", "failed to query result", ""))
		return
	}
	if res == nil {
		writeJSON(w, http.StatusNotFound, errObj("NOT_FOUND", "no such result", "id"))
		return
	}
	writeJSON(w, http.StatusOK, toResultJSON(*res))
}

type statsJSON struct {
	Contest       string    `json:"contest"`
	Plays         int       `json:"plays"`
	Wins          int       `json:"wins"`
	WinRate       float64   `json:"win_rate"`
	AvgDifficulty float64   `json:"avg_difficulty"`
	AvgDurationMs float64   `json:"avg_duration_ms"`
	LastPlayed    time.Time `json:"last_played"`
}

// GET /api/v1/stats
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	all, err := s.store.GetAllContestStats()
	if err != nil {
		s.logger.Error("query stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, errObj("SERVER_ERROR", "failed to query stats", ""))
		return
	}
	out := make([]statsJSON, 0, len(all))
	total := statsJSON{Contest: "all"}
	for _, st := range all {
		out = append(out, statsJSON{
			Contest:       st.Contest,
			Plays:         st.Plays,
			Wins:          st.Wins,
			WinRate:       st.WinRate(),
			AvgDifficulty: st.AvgDifficulty,
			AvgDurationMs: st.AvgDurationMs,
			LastPlayed:    st.LastPlayed,
		})
		total.Plays += st.Plays
		total.Wins += st.Wins
		if st.LastPlayed.After(total.LastPlayed) {
			total.LastPlayed = st.LastPlayed
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Contest < out[j].Contest })
	if total.Plays > 0 {
		total.WinRate = float64(total.Wins) / float64(total.Plays)
	}
	writeJSON(w, http.StatusOK, map[string]any{"contests": out, "total": total})
}

// GET /api/v1/live
func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	sessions := []session.Snapshot{}
	if s.live != nil {
		sessions = s.live.List()
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// ========== Helpers ==========

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func errObj(code, msg, field string) map[string]apiError {
	return map[string]apiError{"error": {Code: code, Message: msg, Field: field}}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
