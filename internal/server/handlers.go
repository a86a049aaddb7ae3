package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/storage"
	"github.com/rs/zerolog/hlog"
)

// maxBodyBytes caps JSON and CSV request bodies.
const maxBodyBytes = 10 << 20

type tipRequest struct {
	Exercise map[string]any   `json:"exercise"`
	Context  coaching.Context `json:"context"`
}

type tipResponse struct {
	Tip        string              `json:"tip"`
	Components coaching.Components `json:"components"`
}

type batchRequest struct {
	Exercises []map[string]any `json:"exercises"`
	Context   coaching.Context `json:"context"`
}

type batchItem struct {
	Exercise string `json:"exercise"`
	Tip      string `json:"tip"`
}

type avoidRequest struct {
	Exercise map[string]any    `json:"exercise"`
	Injuries []coaching.Injury `json:"injuries"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleTip(w http.ResponseWriter, r *http.Request) {
	var req tipRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ex, err := coaching.NormalizeExercise(req.Exercise)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeTip(w, r, ex, req.Context)
}

func (s *Server) handleTipBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	exs := make([]coaching.Exercise, len(req.Exercises))
	for i, raw := range req.Exercises {
		ex, err := coaching.NormalizeExercise(raw)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("exercise %d: %w", i, err))
			return
		}
		exs[i] = ex
	}
	tips, err := coaching.ComposeAll(exs, req.Context)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]batchItem, len(tips))
	for i, tip := range tips {
		out[i] = batchItem{Exercise: exs[i].Name, Tip: tip}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAvoid(w http.ResponseWriter, r *http.Request) {
	var req avoidRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ex, err := coaching.NormalizeExercise(req.Exercise)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"avoid": coaching.ShouldAvoid(ex, req.Injuries)})
}

func (s *Server) handleRPEScale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, coaching.RPEScale)
}

func (s *Server) handleTempoNotation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, coaching.TempoNotation)
}

func (s *Server) writeTip(w http.ResponseWriter, r *http.Request, ex coaching.Exercise, ctx coaching.Context) {
	c, err := s.composer.Components(ex, ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tipResponse{Tip: c.String(), Components: c})
}

// contextFromQuery reads goal, phase and experience query parameters. Phase
// defaults to 1 and experience to Intermediate.
func contextFromQuery(r *http.Request) (coaching.Context, error) {
	q := r.URL.Query()
	phase := 1
	if v := q.Get("phase"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return coaching.Context{}, &coaching.ValidationError{Field: "phase", Value: v, Err: coaching.ErrInvalidPhase}
		}
		phase = n
	}
	experience := q.Get("experience")
	if experience == "" {
		experience = string(coaching.Intermediate)
	}
	return coaching.NewContext(q.Get("goal"), phase, experience, nil, nil)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if coaching.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON: "+err.Error()))
		return false
	}
	return true
}

// writeError maps validation failures to 400, missing rows to 404 and
// everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var bad badRequest
	switch {
	case coaching.IsValidation(err), errors.As(err, &bad):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	}
}

// badRequest is a client error outside the engine's validation.
type badRequest string

func (e badRequest) Error() string { return string(e) }

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
