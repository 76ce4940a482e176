package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/buildinfo"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/render"
)

// HeaderRunID names the pipeline run that served a generate request.
const HeaderRunID = "X-Run-ID"

var contentTypes = map[render.Format]string{
	render.FormatText: "text/plain; charset=utf-8",
	render.FormatJSON: "application/json",
	render.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	render.FormatSVG:  "image/svg+xml",
}

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDemoGrammar(w http.ResponseWriter, r *http.Request) {
	s.writeGrammar(w, r, grammar.Demo())
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	if s.config.grammarDir == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no grammar directory configured"))
		return
	}
	name := chi.URLParam(r, "name")
	if err := errors.ValidateRelativePath(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := grammar.Load(filepath.Join(s.config.grammarDir, name))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeGrammar(w, r, g)
}

func (s *Server) writeGrammar(w http.ResponseWriter, r *http.Request, g grammar.Grammar) {
	var buf bytes.Buffer
	if err := grammar.Encode(&buf, g, grammar.FormatJSON); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[render.FormatJSON])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// an empty body asks for the defaults
	opts := pipeline.Options{Depth: pipeline.DefaultDepth}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.config.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
		}
		s.writeError(w, r, err)
		return
	}

	format := render.FormatJSON
	switch len(opts.Formats) {
	case 0:
		opts.Formats = []string{string(format)}
	case 1:
		format = render.Format(opts.Formats[0])
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "request one format at a time, got %d", len(opts.Formats)))
		return
	}

	opts.MaxDepth = s.config.maxDepth
	opts.Logger = s.config.logger.With("request_id", requestIDFrom(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(HeaderRunID, res.RunID)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[string(format)])
}

// writeError maps the error code to a status and writes the error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.config.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", requestIDFrom(r.Context()))
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func statusFor(err error) int {
	if errors.IsInvalid(err) {
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypes[render.FormatJSON])
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
