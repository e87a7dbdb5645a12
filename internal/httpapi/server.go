package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/domaincheck/internal/domain"
	"github.com/hamed0406/domaincheck/internal/metrics"
	"github.com/hamed0406/domaincheck/internal/repo"
)

// Server exposes run progress while a domain list is being checked.
type Server struct {
	Logger   *zap.Logger
	Verdicts repo.VerdictStore
	Started  time.Time
}

func NewServer(l *zap.Logger, vs repo.VerdictStore) *Server {
	return &Server{Logger: l, Verdicts: vs, Started: time.Now().UTC()}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/api/summary", s.handleSummary)
	r.Get("/api/verdicts", s.handleRecent)

	return r
}

type summaryResponse struct {
	repo.Summary
	Total     int       `json:"total"`
	StartedAt time.Time `json:"started_at"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Verdicts.Summary(r.Context())
	if err != nil {
		s.Logger.Warn("status_summary_error", zap.Error(err))
		http.Error(w, "summary error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summaryResponse{
		Summary:   sum,
		Total:     sum.Total(),
		StartedAt: s.Started,
	})
}

const (
	defaultRecent = 100
	maxRecent     = 1000
)

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecent
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRecent)
	}
	vs, err := s.Verdicts.Recent(r.Context(), limit)
	if err != nil {
		s.Logger.Warn("status_recent_error", zap.Error(err))
		http.Error(w, "verdicts error", http.StatusInternalServerError)
		return
	}
	if vs == nil {
		vs = []domain.Verdict{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(vs)
}

// Serve runs the status API on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("status_listen", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
