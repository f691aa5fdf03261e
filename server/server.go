// Package server exposes the compiler over HTTP.
//
// Routes:
//
//	GET  /healthz   liveness probe
//	POST /compile   {"code": "...", "filename": "...", "trace": false}
//	POST /tokens    {"code": "...", "filename": "..."}
//
// Every response carries an X-Request-Id header and an "id" field with the
// same value. Compilation failures are reported with status 422 and a
// structured diagnostic.
package server

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"net/http"
	"time"

	"github.com/Relsola/moon"
	"github.com/Relsola/moon/errors"
	"github.com/Relsola/moon/lexer"
	"github.com/Relsola/moon/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// MaxBodyBytes limits the size of request bodies.
const MaxBodyBytes = 1 << 20

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCompileOptions sets options applied to every compilation.
func WithCompileOptions(opts ...moon.Option) Option {
	return func(s *Server) {
		s.compileOpts = append(s.compileOpts, opts...)
	}
}

// Server is an http.Handler serving the compiler API.
type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	compileOpts []moon.Option
}

// New returns a Server with its routes registered.
func New(opts ...Option) *Server {
	s := &Server{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Post("/compile", s.handleCompile)
	r.Post("/tokens", s.handleTokens)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !goerrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type compileRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename,omitempty"`
	Trace    bool   `json:"trace,omitempty"`
}

type compileResponse struct {
	ID     string       `json:"id"`
	Output string       `json:"output"`
	Stages *moon.Stages `json:"stages,omitempty"`
}

type tokensResponse struct {
	ID     string        `json:"id"`
	Tokens []token.Token `json:"tokens"`
}

// Diagnostic describes a failed compilation.
type Diagnostic struct {
	Code     errors.ErrorCode `json:"code,omitempty"`
	Kind     string           `json:"kind,omitempty"`
	Message  string           `json:"message"`
	Filename string           `json:"filename,omitempty"`
	Line     int              `json:"line,omitempty"`
	Column   int              `json:"column,omitempty"`
	Hint     string           `json:"hint,omitempty"`
	Rendered string           `json:"rendered"`
}

type errorResponse struct {
	ID    string     `json:"id"`
	Error Diagnostic `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if !decode(w, r, &req) {
		return
	}
	opts := append([]moon.Option{}, s.compileOpts...)
	if req.Filename != "" {
		opts = append(opts, moon.WithFilename(req.Filename))
	}
	stages, err := moon.Trace(req.Code, opts...)
	if err != nil {
		writeFailure(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	resp := compileResponse{ID: idFrom(r.Context()), Output: stages.Output}
	if req.Trace {
		resp.Stages = stages
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if !decode(w, r, &req) {
		return
	}
	tokens, err := lexer.Tokenize(req.Code, lexer.WithFilename(req.Filename))
	if err != nil {
		writeFailure(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if tokens == nil {
		tokens = []token.Token{}
	}
	writeJSON(w, http.StatusOK, tokensResponse{ID: idFrom(r.Context()), Tokens: tokens})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeFailure(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

// NewDiagnostic describes err, including position details when the error
// carries them.
func NewDiagnostic(err error) Diagnostic {
	d := Diagnostic{
		Code:     errors.CodeOf(err),
		Message:  err.Error(),
		Rendered: errors.Render(err, false),
	}
	var fe errors.FormattableError
	if goerrors.As(err, &fe) {
		f := fe.ToFormatted()
		d.Kind = f.Kind
		d.Filename = f.Filename
		d.Line = f.Line
		d.Column = f.Column
		d.Hint = f.Hint
	}
	return d
}

func writeFailure(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, status, errorResponse{ID: idFrom(r.Context()), Error: NewDiagnostic(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
