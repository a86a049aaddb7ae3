package mcp

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/models"
	"github.com/claude/coachtip/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var goalEnum = mcp.Enum("fat_loss", "hypertrophy", "strength", "endurance", "power")

var toolComposeCoachTip = mcp.NewTool("compose_coach_tip",
	mcp.WithDescription("Compose a one-line coach tip for an exercise: effort target (RPE), tempo, form cues, equipment note, progression note and injury note. Missing exercise details are filled from the catalog when the exercise is found there."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Deadlift', 'Push-up')")),
	mcp.WithString("equipment", mcp.Description("Equipment (e.g. barbell, dumbbell, kettlebell, bodyweight)")),
	mcp.WithString("primary_muscle", mcp.Description("Primary muscle worked")),
	mcp.WithString("secondary_muscles", mcp.Description("Comma-separated secondary muscles")),
	mcp.WithString("client_id", mcp.Description("Stored client profile to compose for. Overrides goal, phase, experience and injured_muscles.")),
	mcp.WithString("goal", mcp.Description("Training goal. Required unless client_id is set."), goalEnum),
	mcp.WithNumber("phase", mcp.Description("Periodization phase 1-4. Defaults to 1.")),
	mcp.WithString("experience", mcp.Description("Client experience. Defaults to Intermediate."), mcp.Enum("Beginner", "Intermediate", "Advanced")),
	mcp.WithString("injured_muscles", mcp.Description("Comma-separated injured muscles or areas (e.g. 'lower back, knee')")),
)

var toolCheckInjuryConflict = mcp.NewTool("check_injury_conflict",
	mcp.WithDescription("Check whether an exercise works any injured muscle and should be avoided. Muscles are taken from the catalog when not given."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithString("injured_muscles", mcp.Required(), mcp.Description("Comma-separated injured muscles or areas")),
	mcp.WithString("primary_muscle", mcp.Description("Primary muscle worked")),
	mcp.WithString("secondary_muscles", mcp.Description("Comma-separated secondary muscles")),
)

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search the exercise catalog by name, primary muscle or equipment. With injured_muscles, unsafe exercises are left out. With goal, every result carries a coach tip."),
	mcp.WithString("query", mcp.Description("Search text (partial match)")),
	mcp.WithNumber("limit", mcp.Description("Maximum results. Defaults to 25.")),
	mcp.WithString("injured_muscles", mcp.Description("Comma-separated injured muscles to filter out")),
	mcp.WithString("goal", mcp.Description("Compose a tip per result for this goal (phase 1, Intermediate)"), goalEnum),
)

var toolDescribeRPE = mcp.NewTool("describe_rpe",
	mcp.WithDescription("Explain an effort target such as '8' or 'RPE 7-8' on the 1-10 RPE scale, and optionally a tempo such as '3-1-3'."),
	mcp.WithString("effort", mcp.Required(), mcp.Description("RPE value or effort target (e.g. '8', 'RPE 7-8')")),
	mcp.WithString("tempo", mcp.Description("Tempo notation to explain (e.g. '2-1-2', 'hold')")),
)

// --- Tool handlers ---

type tipResult struct {
	Exercise     string              `json:"exercise"`
	Tip          string              `json:"tip"`
	Components   coaching.Components `json:"components"`
	CatalogMatch bool                `json:"catalog_match"`
}

func (h *handlers) composeCoachTip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	cctx, err := h.coachingContext(ctx, req)
	if err != nil {
		return toolError(err), nil
	}

	ex, matched, err := h.resolveExercise(ctx, name, req)
	if err != nil {
		h.log.Error().Err(err).Str("tool", "compose_coach_tip").Msg("catalog lookup failed")
		return mcp.NewToolResultError("catalog lookup failed: " + err.Error()), nil
	}

	c, err := coaching.Composer{MaxCues: h.maxCues}.Components(ex, cctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(tipResult{Exercise: ex.Name, Tip: c.String(), Components: c, CatalogMatch: matched})
}

func (h *handlers) checkInjuryConflict(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	injured, err := req.RequireString("injured_muscles")
	if err != nil {
		return mcp.NewToolResultError("injured_muscles parameter is required"), nil
	}

	ex, matched, err := h.resolveExercise(ctx, name, req)
	if err != nil {
		h.log.Error().Err(err).Str("tool", "check_injury_conflict").Msg("catalog lookup failed")
		return mcp.NewToolResultError("catalog lookup failed: " + err.Error()), nil
	}

	return jsonResult(map[string]any{
		"exercise":          ex.Name,
		"primary_muscle":    ex.PrimaryMuscle,
		"secondary_muscles": ex.SecondaryMuscles,
		"avoid":             coaching.ShouldAvoid(ex, injuriesFromList(injured)),
		"catalog_match":     matched,
	})
}

type searchItem struct {
	models.ExerciseRow
	Tip string `json:"tip,omitempty"`
}

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.SearchExercises(ctx, req.GetString("query", ""), req.GetInt("limit", 0))
	if err != nil {
		h.log.Error().Err(err).Str("tool", "search_exercises").Msg("search failed")
		return mcp.NewToolResultError("search failed: " + err.Error()), nil
	}

	if injured := req.GetString("injured_muscles", ""); injured != "" {
		injuries := injuriesFromList(injured)
		safe := rows[:0:0]
		for _, r := range rows {
			if !coaching.ShouldAvoid(r.Exercise(), injuries) {
				safe = append(safe, r)
			}
		}
		rows = safe
	}

	out := make([]searchItem, len(rows))
	for i, r := range rows {
		out[i] = searchItem{ExerciseRow: r}
	}

	if g := req.GetString("goal", ""); g != "" {
		goal, err := coaching.ParseGoal(g)
		if err != nil {
			return toolError(err), nil
		}
		for i, r := range rows {
			tip, err := coaching.ComposeSimple(r.Exercise(), goal)
			if err != nil {
				return toolError(err), nil
			}
			out[i].Tip = tip
		}
	}
	return jsonResult(out)
}

func (h *handlers) describeRPE(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	effort, err := req.RequireString("effort")
	if err != nil {
		return mcp.NewToolResultError("effort parameter is required"), nil
	}

	v, ok := parseEffort(effort)
	if !ok {
		return mcp.NewToolResultError("no RPE value found in " + strconv.Quote(effort)), nil
	}
	n := int(math.Floor(v))
	desc, ok := coaching.DescribeRPE(n)
	if !ok {
		return mcp.NewToolResultError("RPE must be between 1 and 10"), nil
	}

	out := map[string]any{"effort": effort, "rpe": n, "description": desc}
	if tempo := req.GetString("tempo", ""); tempo != "" {
		td, ok := coaching.DescribeTempo(tempo)
		if !ok {
			return mcp.NewToolResultError("unknown tempo notation " + strconv.Quote(tempo)), nil
		}
		out["tempo"] = tempo
		out["tempo_description"] = td
	}
	return jsonResult(out)
}

// coachingContext builds the context from a stored client profile when
// client_id is set, otherwise from the goal/phase/experience arguments.
func (h *handlers) coachingContext(ctx context.Context, req mcp.CallToolRequest) (coaching.Context, error) {
	if id := req.GetString("client_id", ""); id != "" {
		clientID, err := uuid.Parse(id)
		if err != nil {
			return coaching.Context{}, errors.New("invalid client_id")
		}
		client, err := h.ds.GetClient(ctx, clientID)
		if err != nil {
			return coaching.Context{}, err
		}
		return client.Context(), nil
	}
	return coaching.NewContext(
		req.GetString("goal", ""),
		req.GetInt("phase", 1),
		req.GetString("experience", string(coaching.Intermediate)),
		injuriesFromList(req.GetString("injured_muscles", "")),
		nil,
	)
}

// resolveExercise starts from the catalog row for name when there is one and
// lets explicit arguments override it.
func (h *handlers) resolveExercise(ctx context.Context, name string, req mcp.CallToolRequest) (coaching.Exercise, bool, error) {
	raw := map[string]any{"name": name}
	if v := req.GetString("equipment", ""); v != "" {
		raw["equipment"] = v
	}
	if v := req.GetString("primary_muscle", ""); v != "" {
		raw["primary_muscle"] = v
	}
	if v := req.GetString("secondary_muscles", ""); v != "" {
		raw["secondary_muscles"] = v
	}

	row, err := h.ds.FindExercise(ctx, name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		ex, err := coaching.NormalizeExercise(raw)
		return ex, false, err
	case err != nil:
		return coaching.Exercise{}, false, err
	}

	ex := storage.MatchedExercise(*row, name)
	if v, ok := raw["equipment"].(string); ok {
		ex.Equipment = v
	}
	if v, ok := raw["primary_muscle"].(string); ok {
		ex.PrimaryMuscle = v
	}
	if v, ok := raw["secondary_muscles"].(string); ok {
		ex.SecondaryMuscles = coaching.SplitList(v)
	}
	return ex, true, nil
}

// injuriesFromList turns "lower back, knee" into one injury per area.
func injuriesFromList(s string) []coaching.Injury {
	var out []coaching.Injury
	for _, m := range coaching.SplitList(s) {
		out = append(out, coaching.Injury{Name: m, AffectedMuscles: []string{m}})
	}
	return out
}

func parseEffort(s string) (float64, bool) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return v, true
	}
	return coaching.ExtractRPE(s)
}

func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("client not found")
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
