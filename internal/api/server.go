package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/triage/internal/batch"
	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/draft"
	"github.com/MikeSquared-Agency/triage/internal/metrics"
)

// Triager runs the inference-backed pipeline for single emails.
// *extractor.Extractor implements it.
type Triager interface {
	batch.Pipeline
	Summarize(ctx context.Context, thread string) (string, error)
}

// Drafter generates and refines reply drafts. *draft.Engine implements it.
type Drafter interface {
	Generate(ctx context.Context, req draft.Request) domain.DraftReply
	GenerateAll(ctx context.Context, req draft.Request) []domain.DraftReply
	Refine(ctx context.Context, current, feedback string, tone domain.Tone) domain.DraftReply
}

// Heuristics is the rule-only engine. *heuristic.Engine implements it.
type Heuristics interface {
	SuggestDueDate(text string) (string, bool)
	CalculatePriority(text, dueDate string) domain.Priority
	ScoreUrgency(email domain.Email) domain.PriorityAnalysis
}

type Deps struct {
	Triager    Triager
	Batch      *batch.Aggregator
	Drafts     Drafter
	Heuristics Heuristics
	Logger     *slog.Logger
}

type Server struct {
	router *chi.Mux
	port   int
	http   *http.Server

	triager    Triager
	batch      *batch.Aggregator
	drafts     Drafter
	heuristics Heuristics
	logger     *slog.Logger
	now        func() time.Time
}

const maxBodyBytes = 1 << 20

func NewServer(port int, deps Deps) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		port:       port,
		triager:    deps.Triager,
		batch:      deps.Batch,
		drafts:     deps.Drafts,
		heuristics: deps.Heuristics,
		logger:     deps.Logger,
		now:        time.Now,
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/", s.root)
	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/threads", s.threads)

	r.Post("/summarize-thread", s.summarizeThread)

	r.Post("/classify-email", s.classifyEmail)
	r.Post("/classify-emails", s.classifyEmails)
	r.Get("/classification-stats", s.classificationStats)

	r.Post("/extract-action-items", s.extractActionItems)
	r.Post("/extract-action-items-batch", s.extractActionItemsBatch)
	r.Get("/action-items-stats", s.actionItemsStats)

	r.Post("/detect-priority", s.detectPriority)
	r.Post("/detect-priority-batch", s.detectPriorityBatch)
	r.Post("/priority-filter", s.priorityFilter)
	r.Post("/priority-recommendations", s.priorityRecommendations)

	r.Post("/suggest-due-date", s.suggestDueDate)
	r.Post("/calculate-priority", s.calculatePriority)
	r.Post("/score-urgency", s.scoreUrgency)

	r.Post("/draft-reply", s.draftReply)
	r.Post("/draft-reply-all-tones", s.draftReplyAllTones)
	r.Post("/refine-draft", s.refineDraft)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("API server starting", "addr", addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(started)
		metrics.RecordHTTPRequest(r.Method, route, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration_ms", elapsed.Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// recoverer turns a handler panic into a 500 with a detail body.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("handler panicked", "path", r.URL.Path, "panic", rec, "request_id", middleware.GetReqID(r.Context()))
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email triage service is running."})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
