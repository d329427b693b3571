package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/umonteiro/toric/pkg/buildinfo"
	apperrors "github.com/umonteiro/toric/pkg/errors"
	"github.com/umonteiro/toric/pkg/fourti2"
	"github.com/umonteiro/toric/pkg/solver"
)

const (
	// DefaultJobTimeout bounds a single background completion run.
	DefaultJobTimeout = 10 * time.Minute

	// DefaultListLimit caps the jobs returned by the list endpoint.
	DefaultListLimit = 50

	// maxBodyBytes bounds request bodies; problem data is small.
	maxBodyBytes = 1 << 20
)

// Config holds server settings.
type Config struct {
	Addr       string
	Store      Store
	Runner     *solver.Runner
	Logger     *log.Logger
	JobTimeout time.Duration
}

// Server is the toric HTTP API.
type Server struct {
	addr       string
	store      Store
	runner     *solver.Runner
	logger     *log.Logger
	jobTimeout time.Duration
	router     chi.Router
	wg         sync.WaitGroup
}

// NewServer creates a server. A nil store falls back to an in-memory
// store, a nil runner to an uncached one.
func NewServer(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = solver.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}

	s := &Server{
		addr:       cfg.Addr,
		store:      cfg.Store,
		runner:     cfg.Runner,
		logger:     cfg.Logger,
		jobTimeout: cfg.JobTimeout,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully and waits for running jobs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("api listening", "addr", s.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.wg.Wait()
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/jobs", s.handleCreateJob)
		r.Get("/jobs", s.handleListJobs)
		r.Get("/jobs/{id}", s.handleGetJob)
		r.Delete("/jobs/{id}", s.handleDeleteJob)
		r.Get("/jobs/{id}/basis", s.handleGetBasis)
	})
	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req struct {
		Name string `json:"name"`
		solver.Options
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "decode request: %v", err)
		return
	}
	if req.Name != "" {
		if err := apperrors.ValidateProblemName(req.Name); err != nil {
			s.writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "%s", apperrors.UserMessage(err))
			return
		}
	}
	opts := req.Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidProblem, "%v", err)
		return
	}
	// Reject unbuildable problems before accepting the job.
	if _, err := opts.Problem(); err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidProblem, "%v", err)
		return
	}

	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Status:    StatusPending,
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(r.Context(), job); err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStore, "store job: %v", err)
		return
	}

	// The run mutates its job value; the encode below reads this one,
	// so the two must not share it.
	run := *job
	s.wg.Add(1)
	go s.process(&run)

	s.writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "invalid limit: %q", q)
			return
		}
		limit = n
	}

	jobs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStore, "list jobs: %v", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStore, "delete job: %v", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetBasis(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}
	switch job.Status {
	case StatusDone:
	case StatusFailed:
		s.writeError(w, http.StatusConflict, apperrors.ErrCodeJobFailed, "%s", job.Error)
		return
	default:
		s.writeError(w, http.StatusConflict, apperrors.ErrCodeJobNotDone, "job is %s", job.Status)
		return
	}

	if r.URL.Query().Get("format") == "4ti2" || r.Header.Get("Accept") == "text/plain" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := fourti2.Write(w, job.Result.Vectors); err != nil {
			s.logger.Error("write basis", "job", job.ID, "error", err)
		}
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"vectors": job.Result.Vectors, "stats": job.Result.Stats})
}

// lookupJob fetches the job named in the URL, writing the error response
// on failure.
func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) (*Job, bool) {
	id := chi.URLParam(r, "id")
	job, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStore, "load job: %v", err)
		return nil, false
	}
	if job == nil {
		s.writeError(w, http.StatusNotFound, apperrors.ErrCodeJobNotFound, "job %s not found", id)
		return nil, false
	}
	return job, true
}

// process runs a job in the background. HTTP request contexts end with
// the request, so runs get their own timeout-bounded context.
func (s *Server) process(job *Job) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	job.Status = StatusRunning
	job.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(ctx, job); err != nil {
		s.logger.Error("store job", "job", job.ID, "error", err)
	}

	result, err := s.runner.Execute(ctx, job.Options)
	job.UpdatedAt = time.Now().UTC()
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		s.logger.Error("job failed", "job", job.ID, "error", err)
	} else {
		job.Status = StatusDone
		job.Result = result
		s.logger.Info("job done",
			"job", job.ID,
			"basis_size", len(result.Vectors),
			"cache_hit", result.CacheHit)
	}
	// A failed run may have consumed the whole timeout; persist the
	// terminal state on a context that survives it.
	putCtx, putCancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer putCancel()
	if err := s.store.Put(putCtx, job); err != nil {
		s.logger.Error("store job", "job", job.ID, "error", err)
	}
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON error payload.
type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code apperrors.Code, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = apperrors.New(code, format, args...).Message
	}
	s.writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
