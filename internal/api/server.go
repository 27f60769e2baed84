// Package api exposes the analysis service over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"SmartWorth/internal/service"
	"SmartWorth/internal/watchlist"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	RateLimit      float64 // requests per second per client
	SimilarLimit   int
}

// NewRouter builds the routed, rate-limited, CORS-enabled handler.
func NewRouter(svc *service.Service, wl *watchlist.Manager, opts Options) http.Handler {
	h := &Handlers{Service: svc, Watchlist: wl, SimilarLimit: opts.SimilarLimit}
	if h.SimilarLimit <= 0 {
		h.SimilarLimit = 5
	}

	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/health", h.Health).Methods("GET")

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/analyze", h.Analyze).Methods("POST")
	v1.HandleFunc("/products", h.ListProducts).Methods("GET")
	v1.HandleFunc("/products/{name}", h.GetProduct).Methods("GET")
	v1.HandleFunc("/products/{name}", h.DeleteProduct).Methods("DELETE")
	v1.HandleFunc("/products/{name}/history", h.History).Methods("GET")
	v1.HandleFunc("/products/{name}/prices", h.LatestPrices).Methods("GET")
	v1.HandleFunc("/similar", h.Similar).Methods("GET")
	v1.HandleFunc("/watchlist", h.ListWatchlist).Methods("GET")
	v1.HandleFunc("/watchlist", h.TrackProduct).Methods("POST")
	v1.HandleFunc("/watchlist/{name}", h.UntrackProduct).Methods("DELETE")

	rate := opts.RateLimit
	if rate <= 0 {
		rate = 5
	}
	lmt := tollbooth.NewLimiter(rate, nil)
	lmt.SetMessage(`{"error":"rate limit exceeded"}`)
	lmt.SetMessageContentType("application/json")

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(tollbooth.LimitHandler(lmt, r))
}

// Server wraps http.Server with context-driven shutdown.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      3 * time.Minute,
	}}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, waiting for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] HTTP API listening on %s", ln.Addr())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Println("[INFO] HTTP API shutting down")
	return s.srv.Shutdown(shutdownCtx)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, path, status and latency of each request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		log.Printf("[INFO] %s %s %d %v", r.Method, r.URL.Path, rw.status, time.Since(start).Round(time.Millisecond))
	})
}
