// Package httpapi exposes diagram and javadoc generation over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/docforge/docforge/internal/domain"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	settings domain.ServerSettings
	handler  http.Handler
	log      *zap.Logger
}

func NewServer(settings domain.ServerSettings, diagrams DiagramGenerator, javadocs JavadocGenerator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("http")

	mux := http.NewServeMux()
	RegisterDiagramRoutes(mux, NewDiagramHandler(diagrams, settings.AllowedBaseDirectory, log))
	RegisterJavadocRoutes(mux, NewJavadocHandler(javadocs, settings.AllowedBaseDirectory, log))

	return &Server{settings: settings, handler: withAccessLog(mux, log), log: log}
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.settings.Addr),
			zap.String("allowed_base_directory", s.settings.AllowedBaseDirectory))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withAccessLog logs one line per request.
func withAccessLog(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
