package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/models"
	"github.com/claude/coachtip/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) (*Server, *storage.SQLite) {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "coachtip.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)

	_, err = store.UpsertExercises(context.Background(), []models.ExerciseRow{
		{Name: "Deadlift", Category: "strength", Equipment: "barbell", PrimaryMuscle: "hamstrings", SecondaryMuscles: []string{"glutes"}},
		{Name: "Bicep Curl", Category: "strength", Equipment: "dumbbell", PrimaryMuscle: "biceps"},
		{Name: "Push-up", Category: "strength", Equipment: "bodyweight", PrimaryMuscle: "chest"},
	})
	require.NoError(t, err)

	return New(store, Options{APIKey: testAPIKey, MaxCues: 3}, zerolog.Nop()), store
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

// TestHandleTip verifies a loosely shaped exercise composes the full tip.
func TestHandleTip(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/v1/tips", map[string]any{
		"exercise": map[string]any{"exercise_name": "Deadlift", "Equipment": "Barbell"},
		"context":  map[string]any{"goal": "strength", "phase": 1, "experience": "Intermediate"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[tipResponse](t, rec)
	assert.Equal(t, "RPE 7, 3-1-3 tempo, Keep chest up throughout the movement, Push through your heels, Barbell exercise", resp.Tip)
	assert.Equal(t, "RPE 7", resp.Components.Effort)
	assert.Equal(t, "3-1-3", resp.Components.Tempo)
	assert.LessOrEqual(t, len(resp.Components.FormCues), 3)
	assert.GreaterOrEqual(t, len(resp.Components.FormCues), 2)
}

// TestHandleTipValidation verifies contract violations are 400s.
func TestHandleTipValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown goal", `{"exercise":{"name":"Squat"},"context":{"goal":"yoga","phase":1,"experience":"Beginner"}}`, "unknown goal"},
		{"bad phase", `{"exercise":{"name":"Squat"},"context":{"goal":"power","phase":7,"experience":"Beginner"}}`, "phase"},
		{"missing context", `{"exercise":{"name":"Squat"}}`, "goal"},
		{"missing name", `{"exercise":{"Equipment":"Barbell"},"context":{"goal":"power","phase":1,"experience":"Beginner"}}`, "exercise name is required"},
		{"malformed", `{"exercise":`, "invalid JSON"},
	}
	for _, tt := range tests {
		rec := do(t, srv, http.MethodPost, "/api/v1/tips", tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
		assert.Contains(t, decode[map[string]string](t, rec)["error"], tt.want, tt.name)
	}
}

// TestHandleTipBatch verifies tips come back in input order.
func TestHandleTipBatch(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/v1/tips/batch", map[string]any{
		"exercises": []map[string]any{{"name": "Push-up", "equipment": "Bodyweight"}, {"Exercise": "Bicep Curl", "Equipment": "Dumbbell"}},
		"context":   map[string]any{"goal": "hypertrophy", "phase": 1, "experience": "Intermediate"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	items := decode[[]batchItem](t, rec)
	require.Len(t, items, 2)
	assert.Equal(t, "Push-up", items[0].Exercise)
	assert.Equal(t, "Bicep Curl", items[1].Exercise)
	assert.Contains(t, items[1].Tip, "Dumbbell exercise")
}

// TestHandleAvoid verifies the injury overlap check.
func TestHandleAvoid(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/v1/avoid", map[string]any{
		"exercise": map[string]any{"name": "Bicep Curl", "primary_muscle": "Biceps"},
		"injuries": []coaching.Injury{{Name: "Elbow tendinitis", AffectedMuscles: []string{"biceps"}}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[map[string]bool](t, rec)["avoid"])

	// camelCase injury fields
	rec = do(t, srv, http.MethodPost, "/api/v1/avoid",
		`{"exercise":{"name":"Push-up","primaryMuscle":"Chest"},"injuries":[{"injury":"Pec strain","affectedMuscles":["chest"]}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[map[string]bool](t, rec)["avoid"])
}

// TestClientsRequireAPIKey verifies mutating routes are protected.
func TestClientsRequireAPIKey(t *testing.T) {
	srv, _ := newTestServer(t)
	body := map[string]any{"name": "Ana", "goal": "strength", "phase": 1, "experience": "Beginner"}

	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodPost, "/api/v1/clients", body).Code)
	assert.Equal(t, http.StatusForbidden, do(t, srv, http.MethodPost, "/api/v1/clients", body, "X-API-Key", "wrong").Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/clients", body, "X-API-Key", testAPIKey).Code)
}

// TestClientFlow covers create, fetch, filtered search and profile tips.
func TestClientFlow(t *testing.T) {
	srv, store := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/v1/clients", map[string]any{
		"name": "Ana", "goal": "hypertrophy", "phase": 2, "experience": "advanced",
		"injuries": []map[string]any{{"name": "Elbow tendinitis", "affected_muscles": []string{"Biceps"}}},
	}, "X-API-Key", testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	client := decode[models.ClientRow](t, rec)
	assert.Equal(t, coaching.Advanced, client.Experience)

	rec = do(t, srv, http.MethodGet, "/api/v1/clients/"+client.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", decode[models.ClientRow](t, rec).Name)

	rec = do(t, srv, http.MethodGet, "/api/v1/exercises?client_id="+client.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	results := decode[[]searchResult](t, rec)
	var names []string
	for _, r := range results {
		names = append(names, r.Name)
		assert.Contains(t, r.Tip, "Selected to avoid: Elbow tendinitis")
	}
	assert.Equal(t, []string{"Deadlift", "Push-up"}, names)

	dl, err := store.FindExercise(context.Background(), "deadlift")
	require.NoError(t, err)
	rec = do(t, srv, http.MethodGet, "/api/v1/clients/"+client.ID.String()+"/exercises/"+dl.ID.String()+"/tip", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	want, err := coaching.Compose(dl.Exercise(), client.Context())
	require.NoError(t, err)
	assert.Equal(t, want, decode[tipResponse](t, rec).Tip)
}

// TestExerciseTip verifies catalog lookups and their error statuses.
func TestExerciseTip(t *testing.T) {
	srv, store := newTestServer(t)
	dl, err := store.FindExercise(context.Background(), "deadlift")
	require.NoError(t, err)

	rec := do(t, srv, http.MethodGet, "/api/v1/exercises/"+dl.ID.String()+"/tip?goal=strength", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(decode[tipResponse](t, rec).Tip, "RPE 7, 3-1-3 tempo"))

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/v1/exercises/"+"00000000-0000-0000-0000-000000000001/tip?goal=strength", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/exercises/not-a-uuid/tip?goal=strength", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/exercises/"+dl.ID.String()+"/tip?goal=strength&phase=two", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/exercises/"+dl.ID.String()+"/tip", nil).Code)
}

// TestSearchWithGoal verifies plain search results carry tips when a goal is given.
func TestSearchWithGoal(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/v1/exercises?q=curl&goal=endurance", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	results := decode[[]searchResult](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "Bicep Curl", results[0].Name)
	assert.NotEmpty(t, results[0].Tip)

	rec = do(t, srv, http.MethodGet, "/api/v1/exercises?q=chest", nil)
	results = decode[[]searchResult](t, rec)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Tip)
}

// TestImportCatalog verifies the CSV import endpoint and its log.
func TestImportCatalog(t *testing.T) {
	srv, _ := newTestServer(t)
	csv := "exercise_name,equipment,primaryMuscles\nGoblet Squat,kettlebells,\"['quadriceps']\"\nPlank,body only,abdominals\n"

	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodPost, "/api/v1/exercises/import", csv).Code)

	rec := do(t, srv, http.MethodPost, "/api/v1/exercises/import?source=test.csv", csv, "X-API-Key", testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[map[string]any](t, rec)
	assert.Equal(t, float64(2), stats["rows_inserted"])

	rec = do(t, srv, http.MethodGet, "/api/v1/imports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode[[]storage.ImportLog](t, rec)
	require.Len(t, logs, 1)
	assert.Equal(t, "test.csv", logs[0].Source)
	assert.Equal(t, "success", logs[0].Status)

	rec = do(t, srv, http.MethodPost, "/api/v1/exercises/import", "level\nbeginner\n", "X-API-Key", testAPIKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// failingCatalog is a store whose catalog writes always fail.
type failingCatalog struct {
	*storage.SQLite
}

func (failingCatalog) UpsertExercises(context.Context, []models.ExerciseRow) (int64, error) {
	return 0, errors.New("database is locked")
}

// TestImportCatalogStoreError verifies a write failure is a server error,
// not a client error.
func TestImportCatalogStoreError(t *testing.T) {
	_, store := newTestServer(t)
	srv := New(failingCatalog{store}, Options{APIKey: testAPIKey}, zerolog.Nop())

	rec := do(t, srv, http.MethodPost, "/api/v1/exercises/import", "exercise_name\nPlank\n", "X-API-Key", testAPIKey)
	assert.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	logs, err := store.QueryImportLogs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "error", logs[0].Status)
}

// TestAlphaPlan verifies an export is annotated per exercise.
func TestAlphaPlan(t *testing.T) {
	srv, _ := newTestServer(t)
	csv := "\"Pull · Day 3\";\"2026-02-20 6:10 h\";\"0:55 hr\"\n" +
		"\"1. Deadlift · Barbell · 5 reps\"\n#;KG;REPS;RIR\n1;140;5;2\n2;140;5;1\n"

	rec := do(t, srv, http.MethodPost, "/api/v1/plans/alpha?goal=strength&phase=1", csv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Sessions []models.AnnotatedSession `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Sessions, 1)
	require.Len(t, resp.Sessions[0].Exercises, 1)
	ex := resp.Sessions[0].Exercises[0]
	assert.Equal(t, "RPE 7, 3-1-3 tempo, Keep chest up throughout the movement, Push through your heels, Barbell exercise", ex.Tip)
	require.NotNil(t, ex.LoggedRPE)
	assert.Equal(t, 8.5, *ex.LoggedRPE)

	rec = do(t, srv, http.MethodPost, "/api/v1/plans/alpha", csv)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestReferenceAndHealth verifies the static endpoints.
func TestReferenceAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/v1/reference/rpe", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]coaching.ScaleEntry](t, rec), len(coaching.RPEScale))

	rec = do(t, srv, http.MethodGet, "/api/v1/reference/tempo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]coaching.NotationEntry](t, rec), len(coaching.TempoNotation))

	rec = do(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/me", nil)
	assert.Equal(t, localUser, decode[UserInfo](t, rec))
}
