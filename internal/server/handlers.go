package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/crossgrid/pkg/errors"
	"github.com/matzehuels/crossgrid/pkg/generate"
)

var contentTypes = map[string]string{
	generate.FormatText:       "text/plain; charset=utf-8",
	generate.FormatStructured: "application/json",
	generate.FormatSVG:        "image/svg+xml",
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	words := parseWords(r.URL.Query().Get("words"))

	format, err := requestFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateWordList(words); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.writeError(w, r, err)
		return
	}
	defer s.sem.Release(1)

	opts := s.cfg.Generate
	opts.Format = format
	opts.Logger = s.logger.With("id", middleware.GetReqID(ctx))

	rep, err := s.runner.Generate(ctx, words, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := s.runner.Render(ctx, rep, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(rep.Cached))
	_, _ = w.Write(body)
}

// parseWords splits a comma-separated list, dropping empty entries.
func parseWords(raw string) []string {
	var words []string
	for _, w := range strings.Split(raw, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// requestFormat reads ?format=, with ?json=true as shorthand for structured.
func requestFormat(r *http.Request) (string, error) {
	q := r.URL.Query()
	if b, err := strconv.ParseBool(q.Get("json")); err == nil && b {
		return generate.FormatStructured, nil
	}
	return generate.ParseFormat(q.Get("format"))
}

func wantsJSON(r *http.Request) bool {
	f, err := requestFormat(r)
	return err == nil && f == generate.FormatStructured
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// writeError maps err onto a status code. Only client-facing codes reveal
// their message; everything else is reported by request ID alone.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	id := middleware.GetReqID(r.Context())
	code := errors.GetCode(err)

	var status int
	msg := errors.UserMessage(err)
	switch {
	case errors.IsClientError(err):
		status = http.StatusBadRequest
	case code == errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case code == errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	default:
		if stderrors.Is(err, context.Canceled) {
			s.logger.Debug("client went away", "id", id)
			return
		}
		s.logger.Error("request failed", "id", id, "error", err)
		status = http.StatusInternalServerError
		code = errors.ErrCodeInternal
		msg = "Internal server error (request " + id + ")"
	}

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(errorBody{Error: string(code), Message: msg, RequestID: id})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg + "\n"))
}
