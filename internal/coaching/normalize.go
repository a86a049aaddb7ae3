package coaching

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Loose field names accepted by NormalizeExercise, in priority order.
var (
	nameKeys      = []string{"exercise_name", "Exercise", "name", "exercise"}
	categoryKeys  = []string{"category", "Category"}
	bodyPartKeys  = []string{"body_part", "bodyPart", "primary_muscle", "Primary muscle"}
	equipmentKeys = []string{"equipment", "Equipment"}
	levelKeys     = []string{"experience_level", "Experience", "level"}
	primaryKeys   = []string{"primary_muscle", "Primary muscle", "primaryMuscle", "primaryMuscles"}
	secondaryKeys = []string{"secondary_muscles", "secondaryMuscles", "Secondary muscles"}
)

const (
	defaultCategory = "Strength"
	defaultBodyPart = "Full Body"
	defaultMuscle   = "Full Body"
)

// NormalizeExercise maps a loosely-keyed record (catalog export, CSV row,
// JSON body) onto an Exercise. A missing name is rejected rather than
// defaulted. Equipment stays empty when absent so the resolvers treat it as
// bodyweight.
func NormalizeExercise(raw map[string]any) (Exercise, error) {
	ex := Exercise{
		Name:             firstString(raw, nameKeys),
		Category:         firstString(raw, categoryKeys),
		BodyPart:         firstString(raw, bodyPartKeys),
		Equipment:        firstString(raw, equipmentKeys),
		ExperienceLevel:  firstString(raw, levelKeys),
		PrimaryMuscle:    firstString(raw, primaryKeys),
		SecondaryMuscles: firstList(raw, secondaryKeys),
	}
	if err := ex.Validate(); err != nil {
		return Exercise{}, err
	}
	if ex.Category == "" {
		ex.Category = defaultCategory
	}
	if ex.BodyPart == "" {
		ex.BodyPart = defaultBodyPart
	}
	if ex.ExperienceLevel == "" {
		ex.ExperienceLevel = string(Intermediate)
	}
	if ex.PrimaryMuscle == "" {
		ex.PrimaryMuscle = defaultMuscle
	}
	return ex, nil
}

func firstString(raw map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case []any:
			if len(t) > 0 {
				s = fmt.Sprint(t[0])
			}
		case []string:
			if len(t) > 0 {
				s = t[0]
			}
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func firstList(raw map[string]any, keys []string) []string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		var out []string
		switch t := v.(type) {
		case []string:
			out = trimAll(t)
		case []any:
			items := make([]string, 0, len(t))
			for _, item := range t {
				items = append(items, fmt.Sprint(item))
			}
			out = trimAll(items)
		case string:
			out = SplitList(t)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// SplitList splits a comma-separated muscle list, dropping empty entries.
func SplitList(s string) []string {
	return trimAll(strings.Split(s, ","))
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var (
	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	effortNumberRe = regexp.MustCompile(`RPE\s+(\d+(?:\.\d+)?)`)
)

// SanitizeExerciseName lowercases name, strips everything but letters,
// digits and spaces, and collapses whitespace.
func SanitizeExerciseName(name string) string {
	s := nonAlnumRe.ReplaceAllString(strings.ToLower(name), "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ExtractRPE returns the first number following "RPE" in s.
func ExtractRPE(s string) (float64, bool) {
	m := effortNumberRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
