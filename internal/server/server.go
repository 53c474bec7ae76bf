// Package server exposes the correction pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	cerrors "textcorrector/internal/errors"
	"textcorrector/internal/observe"
	"textcorrector/internal/pipeline"
)

// DefaultMaxUploadBytes caps request bodies when no limit is configured.
const DefaultMaxUploadBytes = 1 << 20

// Server serves the JSON API.
type Server struct {
	pipeline  *pipeline.Pipeline
	logger    *slog.Logger
	metrics   *observe.Metrics
	maxUpload int64
}

// Option configures a [Server].
type Option func(*Server)

func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMetrics wraps every route in the request-metrics middleware and serves
// /metrics.
func WithMetrics(m *observe.Metrics) Option { return func(s *Server) { s.metrics = m } }

// WithMaxUploadBytes caps the size of every request body.
func WithMaxUploadBytes(n int64) Option { return func(s *Server) { s.maxUpload = n } }

// New creates a server around p.
func New(p *pipeline.Pipeline, opts ...Option) *Server {
	s := &Server{pipeline: p, maxUpload: DefaultMaxUploadBytes}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	return s
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/correct", s.handleCorrect)
	mux.HandleFunc("/api/add_word", s.handleAddWord)
	mux.HandleFunc("/api/correct_file", s.handleCorrectFile)
	if s.metrics == nil {
		return mux
	}
	mux.Handle("/metrics", promhttp.Handler())
	return observe.Middleware(s.metrics, s.logger)(mux)
}

type correctRequest struct {
	Text string `json:"text"`
}

type addWordRequest struct {
	Word string `json:"word"`
}

type addWordResponse struct {
	Success bool   `json:"success"`
	Word    string `json:"word,omitempty"`
	Error   string `json:"error,omitempty"`
}

type fileResponse struct {
	Success bool `json:"success"`
	pipeline.Result
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req correctRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.pipeline.Run(r.Context(), req.Text))
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req addWordRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	lw, err := s.pipeline.AddCustomWord(r.Context(), req.Word)
	if err != nil {
		writeJSON(w, cerrors.StatusOf(err), addWordResponse{Success: false, Error: "Please provide a single alphabetic word."})
		return
	}
	writeJSON(w, http.StatusOK, addWordResponse{Success: true, Word: lw})
}

func (s *Server) handleCorrectFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if r.ContentLength > s.maxUpload {
		s.writeError(w, cerrors.NewPayloadTooLarge(s.maxUpload))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	f, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, cerrors.NewPayloadTooLarge(s.maxUpload))
			return
		}
		s.writeError(w, cerrors.NewInvalidRequest("No file uploaded"))
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		s.writeError(w, cerrors.NewInvalidRequest("Unable to read file as text"))
		return
	}
	text := strings.ToValidUTF8(string(raw), "")
	res := s.pipeline.Run(r.Context(), text)
	writeJSON(w, http.StatusOK, fileResponse{Success: true, Result: res})
}

// readJSON decodes a body of at most maxUpload bytes into v. An empty body
// leaves v untouched.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	err := json.NewDecoder(r.Body).Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &tooLarge):
		return cerrors.NewPayloadTooLarge(s.maxUpload)
	}
	return cerrors.NewInvalidRequest("invalid JSON body")
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var cErr *cerrors.CorrectorError
	if errors.As(err, &cErr) {
		resp.Error = cErr.Message
		resp.Code = string(cErr.Code)
	}
	status := cerrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
