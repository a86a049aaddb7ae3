// Package alpha reads Alpha Progression CSV exports and annotates the
// planned exercises with coaching tips.
package alpha

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/claude/coachtip/internal/models"
)

var (
	// "Session Name";"2026-02-19 4:54 h";"1:02 hr"
	sessionRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)\s+h";"(.+)"$`)

	// "1. Exercise Name · Equipment · 8 reps[· modifiers]"[;"warmup info"]
	exerciseRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)(?:\s+·\s+(\S.*?))?\s+·\s+(\d+)\s+reps(.*?)"(?:;"(.+)")?$`)

	// 1;115;8;1
	setRe = regexp.MustCompile(`^(\d+);(.+);(\d+);(.+)$`)

	// WU1 · 37,5 kg · 9 reps
	warmupRe = regexp.MustCompile(`WU(\d+)\s+·\s+(.+?)\s+kg\s+·\s+(\d+)\s+reps`)
)

const columnHeader = "#;KG;REPS;RIR"

var sessionDateLayouts = []string{"2006-01-02 15:04", "2006-01-02 3:04"}

// parser accumulates sessions line by line. A blank line or a new session
// header closes the current session.
type parser struct {
	sessions []models.AlphaSession
	session  *models.AlphaSession
	exercise *models.AlphaExercise
}

// Parse reads an Alpha Progression CSV export and returns the sessions in
// file order. Unrecognized lines are skipped.
func Parse(r io.Reader) ([]models.AlphaSession, error) {
	var p parser
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		if err := p.line(strings.TrimSpace(sc.Text())); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	p.closeSession()
	return p.sessions, nil
}

func (p *parser) line(line string) error {
	switch {
	case line == "":
		p.closeSession()
	case line == columnHeader:
	case sessionRe.MatchString(line):
		return p.startSession(sessionRe.FindStringSubmatch(line))
	case exerciseRe.MatchString(line):
		return p.startExercise(exerciseRe.FindStringSubmatch(line), line)
	case setRe.MatchString(line):
		return p.addSet(setRe.FindStringSubmatch(line), line)
	}
	return nil
}

func (p *parser) startSession(m []string) error {
	p.closeSession()
	date, err := parseSessionDate(m[2])
	if err != nil {
		return err
	}
	p.session = &models.AlphaSession{Name: m[1], Date: date, Duration: m[3]}
	return nil
}

func (p *parser) startExercise(m []string, line string) error {
	if p.session == nil {
		return fmt.Errorf("exercise without session: %q", line)
	}
	p.closeExercise()
	num, _ := strconv.Atoi(m[1])
	reps, _ := strconv.Atoi(m[4])
	p.exercise = &models.AlphaExercise{
		Number:     num,
		Name:       strings.TrimSpace(m[2]),
		Equipment:  strings.TrimSpace(m[3]),
		TargetReps: reps,
		Sets:       parseWarmups(m[6]),
	}
	return nil
}

func (p *parser) addSet(m []string, line string) error {
	if p.exercise == nil {
		return fmt.Errorf("set data without exercise: %q", line)
	}
	num, _ := strconv.Atoi(m[1])
	weight, plus := parseWeight(m[2])
	reps, _ := strconv.Atoi(m[3])
	p.exercise.Sets = append(p.exercise.Sets, models.AlphaSet{
		Number:           num,
		WeightKg:         weight,
		IsBodyweightPlus: plus,
		Reps:             reps,
		RIR:              parseDecimal(m[4]),
	})
	return nil
}

func (p *parser) closeExercise() {
	if p.session != nil && p.exercise != nil {
		p.session.Exercises = append(p.session.Exercises, *p.exercise)
	}
	p.exercise = nil
}

func (p *parser) closeSession() {
	p.closeExercise()
	if p.session != nil {
		p.sessions = append(p.sessions, *p.session)
	}
	p.session = nil
}

func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range sessionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse session date %q", s)
}

// parseWarmups reads "WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps".
func parseWarmups(s string) []models.AlphaSet {
	if s == "" {
		return nil
	}
	var sets []models.AlphaSet
	for _, part := range strings.Split(s, "<br>") {
		m := warmupRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		weight, plus := parseWeight(m[2])
		reps, _ := strconv.Atoi(m[3])
		sets = append(sets, models.AlphaSet{
			Number:           num,
			WeightKg:         weight,
			IsBodyweightPlus: plus,
			Reps:             reps,
			IsWarmup:         true,
		})
	}
	return sets
}

// parseWeight reads "+35" (bodyweight plus 35) and "102,5".
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		return parseDecimal(rest), true
	}
	return parseDecimal(s), false
}

// parseDecimal accepts a comma decimal separator. Unparseable input is 0.
func parseDecimal(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	return f
}
