// Package server exposes tool surface and project export over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"pagecraft/common"
	"pagecraft/config"
	"pagecraft/export"
	"pagecraft/misc"
	"pagecraft/tools"
)

// limit on tool call request body
const maxBodySize = 4 << 20

var contentTypes = map[common.ExportFmt]string{
	common.ExportFmtHtml: "text/html; charset=utf-8",
	common.ExportFmtPptx: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	common.ExportFmtPdf:  "application/pdf",
	common.ExportFmtPng:  "image/png",
	common.ExportFmtJpeg: "image/jpeg",
	common.ExportFmtJson: "application/json",
}

// Server serializes all access to the project it serves.
type Server struct {
	cfg      *config.ServerConfig
	surface  *tools.Surface
	exporter *export.Exporter
	log      *zap.Logger

	mu      sync.Mutex
	handler http.Handler
}

// New creates server. Exporter may be nil in which case default export
// configuration is used.
func New(cfg *config.ServerConfig, surface *tools.Surface, exporter *export.Exporter, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, surface: surface, exporter: exporter, log: log.Named("server")}
	if s.exporter == nil {
		s.exporter = export.NewExporter(nil, log)
	}
	s.handler = s.routes()
	return s
}

// Handler returns configured router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.log))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition", "X-Export-Failures"},
		MaxAge:         300,
	}))

	router.Get("/health", s.health)
	router.Route("/api", func(r chi.Router) {
		r.Get("/tools", s.listTools)
		r.Post("/tools/{name}", s.callTool)
		r.Get("/project/export/{format}", s.exportProject)
	})
	return router
}

// requestLogger logs every request once it is served.
func requestLogger(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
				zap.String("remoteAddr", r.RemoteAddr),
			)
		})
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, tools.Result{Error: message})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": misc.GetVersion(),
	})
}

func (s *Server) listTools(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, tools.Tools())
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := tools.Lookup(name); !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Unknown tool %q", name))
		return
	}

	args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "unable to read request: "+err.Error())
		return
	}
	if len(bytes.TrimSpace(args)) > 0 && !json.Valid(args) {
		s.respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	s.mu.Lock()
	res := s.surface.Call(r.Context(), name, args)
	s.mu.Unlock()

	if !res.Success {
		s.log.Debug("Tool call failed", zap.String("tool", name), zap.String("error", res.Error))
	}
	// tool level failures are part of the envelope
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) exportProject(w http.ResponseWriter, r *http.Request) {
	format, err := common.ParseExportFmt(chi.URLParam(r, "format"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported export format %q", chi.URLParam(r, "format")))
		return
	}

	var (
		buf  bytes.Buffer
		res  *export.Result
		name string
	)
	s.mu.Lock()
	p := s.surface.Project()
	res, err = s.exporter.Export(r.Context(), p, format, &buf)
	name = s.exporter.FileName(p, format)
	s.mu.Unlock()

	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, export.ErrUnsupported):
			status = http.StatusBadRequest
		case errors.Is(err, context.Canceled):
			s.log.Debug("Export cancelled by client", zap.Stringer("format", format))
			return
		}
		s.log.Error("Export failed", zap.Stringer("format", format), zap.Error(err))
		s.respondError(w, status, err.Error())
		return
	}
	for _, f := range res.Failures {
		s.log.Warn("Export item failure", zap.Error(f))
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	h.Set("X-Export-Failures", strconv.Itoa(len(res.Failures)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debug("Unable to write export", zap.Error(err))
	}
}

// Run listens on configured address and serves until context is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on listener until context is done, then shuts
// down gracefully waiting for active requests no longer than configured
// shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          zap.NewStdLog(s.log),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting server", zap.Stringer("address", ln.Addr()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
