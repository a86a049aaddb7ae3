package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/claude/coachtip/internal/catalog"
	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/models"
	"github.com/claude/coachtip/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type searchResult struct {
	models.ExerciseRow
	Tip string `json:"tip,omitempty"`
}

// handleSearchExercises searches the catalog. With client_id the client's
// injuries filter out unsafe candidates; with goal (or a client) each result
// carries a tip.
func (s *Server) handleSearchExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	rows, err := s.store.SearchExercises(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var cctx *coaching.Context
	if id := q.Get("client_id"); id != "" {
		clientID, err := uuid.Parse(id)
		if err != nil {
			s.writeError(w, r, badRequest("invalid client ID"))
			return
		}
		client, err := s.store.GetClient(r.Context(), clientID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		c := client.Context()
		cctx = &c
		rows = filterSafeRows(rows, c.Injuries)
	} else if q.Get("goal") != "" {
		c, err := contextFromQuery(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		cctx = &c
	}

	out := make([]searchResult, len(rows))
	for i, row := range rows {
		out[i] = searchResult{ExerciseRow: row}
	}
	if cctx != nil && len(rows) > 0 {
		tips, err := coaching.ComposeAll(rowExercises(rows), *cctx)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		for i := range out {
			out[i].Tip = tips[i]
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExerciseTip(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	cctx, err := contextFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	row, err := s.store.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeTip(w, r, row.Exercise(), cctx)
}

func (s *Server) handleUpsertClient(w http.ResponseWriter, r *http.Request) {
	var req models.ClientRow
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, r, badRequest("name is required"))
		return
	}
	if err := req.Context().Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	client, err := s.store.UpsertClient(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	client, err := s.store.GetClient(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleClientExerciseTip(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	exerciseID, ok := parseID(w, r, "exerciseID")
	if !ok {
		return
	}
	client, err := s.store.GetClient(r.Context(), clientID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	row, err := s.store.GetExercise(r.Context(), exerciseID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeTip(w, r, row.Exercise(), client.Context())
}

func (s *Server) handleImportCatalog(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "http"
	}
	stats, err := s.importer.Import(r.Context(), r.Body, source)
	if errors.Is(err, catalog.ErrInvalidCSV) {
		s.writeError(w, r, badRequest(err.Error()))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := s.store.QueryImportLogs(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if logs == nil {
		logs = []storage.ImportLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleAlphaPlan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var (
		cctx coaching.Context
		err  error
	)
	if id := r.URL.Query().Get("client_id"); id != "" {
		clientID, perr := uuid.Parse(id)
		if perr != nil {
			s.writeError(w, r, badRequest("invalid client ID"))
			return
		}
		client, gerr := s.store.GetClient(r.Context(), clientID)
		if gerr != nil {
			s.writeError(w, r, gerr)
			return
		}
		cctx = client.Context()
	} else if cctx, err = contextFromQuery(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	sessions, result, err := s.plans.Annotate(r.Context(), r.Body, cctx)
	if err != nil {
		if coaching.IsValidation(err) {
			s.writeError(w, r, err)
			return
		}
		s.writeError(w, r, badRequest(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"result":   result,
	})
}

// filterSafeRows keeps the rows coaching.FilterSafe keeps. Catalog names are
// unique, so the filtered exercises map back by name.
func filterSafeRows(rows []models.ExerciseRow, injuries []coaching.Injury) []models.ExerciseRow {
	safe := coaching.FilterSafe(rowExercises(rows), injuries)
	keep := make(map[string]bool, len(safe))
	for _, ex := range safe {
		keep[ex.Name] = true
	}
	out := make([]models.ExerciseRow, 0, len(safe))
	for _, row := range rows {
		if keep[row.Name] {
			out = append(out, row)
		}
	}
	return out
}

func rowExercises(rows []models.ExerciseRow) []coaching.Exercise {
	exs := make([]coaching.Exercise, len(rows))
	for i, row := range rows {
		exs[i] = row.Exercise()
	}
	return exs
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid "+param))
		return uuid.Nil, false
	}
	return id, true
}
