package cli

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/bbaird/floorplan/pkg/cache"
	"github.com/bbaird/floorplan/pkg/errors"
	"github.com/bbaird/floorplan/pkg/pipeline"
	"github.com/bbaird/floorplan/pkg/results"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	store    string // results backend: memory, file, or mongo
	mongoURI string
	mongoDB  string
	redis    string // redis address for the evaluation cache
	noCache  bool
}

// serveCommand creates the serve command running the HTTP evaluation API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    ":8080",
		store:   "memory",
		mongoDB: appName,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP evaluation API",
		Long: `Run an HTTP API exposing the evaluation pipeline.

Endpoints:
  POST   /api/evaluate      evaluate an expression against a manifest
  GET    /api/results       list stored results, newest first
  GET    /api/results/{id}  fetch one stored result
  DELETE /api/results/{id}  delete one stored result
  GET    /healthz           liveness probe

Results are stored in memory by default; use --store file or
--store mongo for persistence. With --redis, evaluations are cached in
Redis instead of the local file cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.store, "store", opts.store, "results backend: memory, file, or mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string (with --store mongo)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name (with --store mongo)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the evaluation cache (host:port)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the evaluation cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cch, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	store, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newAPIHandler(runner, store, c.Logger),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr, "store", opts.store)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redis})
	}
	return newCache(false)
}

func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (results.Store, error) {
	switch opts.store {
	case "memory":
		return results.NewMemoryStore(), nil
	case "file":
		dir, err := historyDir()
		if err != nil {
			return nil, err
		}
		return results.NewFileStore(dir)
	case "mongo":
		return results.NewMongoStore(ctx, results.MongoConfig{
			URI:      opts.mongoURI,
			Database: opts.mongoDB,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown store %q (must be memory, file, or mongo)", opts.store)
	}
}

// apiServer implements the HTTP evaluation API.
type apiServer struct {
	runner *pipeline.Runner
	store  results.Store
	logger *log.Logger
}

// newAPIHandler wires up the chi router for the API.
func newAPIHandler(runner *pipeline.Runner, store results.Store, logger *log.Logger) http.Handler {
	s := &apiServer{runner: runner, store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Get("/results", s.handleListResults)
		r.Get("/results/{id}", s.handleGetResult)
		r.Delete("/results/{id}", s.handleDeleteResult)
	})

	return r
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// evaluateResponse is the body returned by POST /api/evaluate.
type evaluateResponse struct {
	Result      *results.Result   `json:"result"`
	LibraryHash string            `json:"library_hash"`
	Cached      bool              `json:"cached"`
	Artifacts   map[string][]byte `json:"artifacts,omitempty"`
}

func (s *apiServer) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Put(r.Context(), res.Evaluation); err != nil {
		s.logger.Error("store result", "err", err)
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Result:      res.Evaluation,
		LibraryHash: res.LibraryHash,
		Cached:      res.CacheInfo.EvalHit,
		Artifacts:   res.Artifacts,
	})
}

func (s *apiServer) handleListResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", q))
			return
		}
		limit = n
	}

	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": list})
}

func (s *apiServer) handleGetResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *apiServer) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses and writes a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidExpression, errors.ErrCodeInvalidCell,
		errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidInput, errors.ErrCodeUnknownCell,
		errors.ErrCodeMalformedTree:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeResultMissing, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if err == results.ErrNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": errors.UserMessage(err)})
}
