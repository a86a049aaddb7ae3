// Package catalog imports exercise-database CSV exports into the exercise
// catalog.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/models"
)

// Defaults applied to blank CSV cells.
const (
	DefaultLevel     = "beginner"
	DefaultCategory  = "strength"
	DefaultEquipment = "body only"
)

var (
	// ErrInvalidCSV wraps every failure to read or parse the input, as
	// opposed to a failure writing to the store.
	ErrInvalidCSV = errors.New("invalid catalog csv")

	// ErrNoNameColumn is returned when the header has no exercise name column.
	ErrNoNameColumn = errors.New("csv header has no exercise_name column")
)

// Rejection records a CSV row that could not become a catalog row.
type Rejection struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// columns maps a logical field to the accepted header spellings.
var columns = map[string][]string{
	"name":         {"exercise_name", "name", "exercise"},
	"category":     {"category"},
	"level":        {"level", "experience_level"},
	"equipment":    {"equipment"},
	"primary":      {"primarymuscles", "primary_muscles", "primary_muscle"},
	"secondary":    {"secondarymuscles", "secondary_muscles"},
	"video":        {"youtube_search_url", "video_url", "video_link"},
	"instructions": {"instructions"},
}

// equipmentNames maps catalog equipment labels onto the names the tip
// engine recognizes.
var equipmentNames = map[string]string{
	"body only":     "bodyweight",
	"none":          "bodyweight",
	"e-z curl bar":  "barbell",
	"exercise ball": "stability ball",
}

// Parse reads a catalog CSV. Rows without a name are returned as rejections
// rather than failing the whole file.
func Parse(r io.Reader) ([]models.ExerciseRow, []Rejection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	idx := indexHeader(header)
	if _, ok := idx["name"]; !ok {
		return nil, nil, ErrNoNameColumn
	}

	var (
		rows     []models.ExerciseRow
		rejected []Rejection
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, rejected, fmt.Errorf("reading catalog: %w", err)
		}
		line, _ := cr.FieldPos(0)
		get := func(field string) string {
			i, ok := idx[field]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		name := get("name")
		if name == "" {
			rejected = append(rejected, Rejection{Line: line, Reason: "missing exercise name"})
			continue
		}
		rows = append(rows, toRow(name, get))
	}
	return rows, rejected, nil
}

func toRow(name string, get func(string) string) models.ExerciseRow {
	primary := cleanList(get("primary"))
	row := models.ExerciseRow{
		Name:             name,
		Category:         orDefault(strings.ToLower(get("category")), DefaultCategory),
		Level:            orDefault(strings.ToLower(get("level")), DefaultLevel),
		Equipment:        NormalizeEquipment(get("equipment")),
		SecondaryMuscles: cleanList(get("secondary")),
		VideoURL:         get("video"),
		Instructions:     strings.Join(coaching.SplitList(stripBrackets(get("instructions"))), "\n"),
	}
	if len(primary) > 0 {
		row.PrimaryMuscle = primary[0]
		// Extra primary muscles still count for injury checks.
		row.SecondaryMuscles = append(primary[1:len(primary):len(primary)], row.SecondaryMuscles...)
	}
	return row
}

// NormalizeEquipment lowercases a catalog equipment label and maps it onto
// the engine's vocabulary. A blank label is bodyweight.
func NormalizeEquipment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = DefaultEquipment
	}
	if mapped, ok := equipmentNames[s]; ok {
		return mapped
	}
	return s
}

func indexHeader(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		byName[h] = i
	}
	idx := make(map[string]int, len(columns))
	for field, names := range columns {
		for _, n := range names {
			if i, ok := byName[n]; ok {
				idx[field] = i
				break
			}
		}
	}
	return idx
}

// cleanList parses list cells exported as "['a', 'b']" or "a, b".
func cleanList(s string) []string {
	s = strings.NewReplacer("'", "", `"`, "").Replace(stripBrackets(s))
	return coaching.SplitList(s)
}

func stripBrackets(s string) string {
	return strings.NewReplacer("[", "", "]", "").Replace(s)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
