package coaching

import "strings"

// DefaultEquipment is assumed when an exercise names no equipment.
const DefaultEquipment = "bodyweight"

// EquipmentGuidance is one row of the equipment table.
type EquipmentGuidance struct {
	Equipment string   `json:"equipment"`
	Note      string   `json:"note"`
	Tips      []string `json:"tips"`
}

var equipmentTable = []EquipmentGuidance{
	{"bodyweight", "No equipment needed", []string{"Focus on form", "Full range of motion", "Control the movement"}},
	{"dumbbell", "Dumbbell exercise", []string{"Keep weights controlled", "Maintain balance", "Full range of motion"}},
	{"barbell", "Barbell exercise", []string{"Proper grip", "Keep bar path straight", "Brace core"}},
	{"cable", "Cable exercise", []string{"Maintain cable tension", "Control the movement", "Full range of motion"}},
	{"suspension trainer", "Suspension trainer exercise", []string{"Maintain body tension", "Control the movement", "Adjust difficulty with foot position"}},
	{"gymnastic rings", "Gymnastic rings exercise", []string{"Maintain ring stability", "Control the movement", "Focus on shoulder stability"}},
	{"parallette bars", "Parallette bars exercise", []string{"Maintain proper hand position", "Control the movement", "Keep body aligned"}},
	{"stability ball", "Stability ball exercise", []string{"Maintain ball stability", "Control the movement", "Engage core throughout"}},
	{"medicine ball", "Medicine ball exercise", []string{"Control the ball", "Maintain proper form", "Focus on power transfer"}},
	{"slam ball", "Slam ball exercise", []string{"Control the slam", "Maintain proper form", "Focus on explosive movement"}},
	{"ab wheel", "Ab wheel exercise", []string{"Control the rollout", "Maintain core tension", "Don't let hips sag"}},
	{"miniband", "Miniband exercise", []string{"Maintain band tension", "Control the movement", "Focus on resistance"}},
	{"sliders", "Slider exercise", []string{"Control the slide", "Maintain stability", "Focus on smooth movement"}},
	{"pull up bar", "Pull-up bar exercise", []string{"Proper grip", "Control the movement", "Full range of motion"}},
}

var defaultGuidance = EquipmentGuidance{
	Note: "Focus on proper form and control",
	Tips: []string{"Focus on proper form", "Control the movement"},
}

type equipmentAlias struct {
	terms []string
	key   string
}

var equipmentAliases = []equipmentAlias{
	{[]string{"dumbbell", "db"}, "dumbbell"},
	{[]string{"barbell", "bb"}, "barbell"},
	{[]string{"cable", "machine"}, "cable"},
	{[]string{"suspension", "trx"}, "suspension trainer"},
	{[]string{"ring", "gymnastic"}, "gymnastic rings"},
	{[]string{"parallette", "parallettes"}, "parallette bars"},
	{[]string{"stability", "swiss ball"}, "stability ball"},
	{[]string{"medicine", "med ball"}, "medicine ball"},
	{[]string{"slam", "wall ball"}, "slam ball"},
	{[]string{"ab wheel", "ab roller"}, "ab wheel"},
	{[]string{"band", "resistance"}, "miniband"},
	{[]string{"slider", "slide"}, "sliders"},
	{[]string{"pull up", "chin up"}, "pull up bar"},
}

// ResolveEquipment looks up the guidance row for an exercise's equipment:
// exact match, then substring match in either direction, then the alias
// chain. It reports false and returns the default guidance when nothing
// matches.
func ResolveEquipment(ex Exercise) (EquipmentGuidance, bool) {
	eq := lower(ex.Equipment)
	if eq == "" {
		eq = DefaultEquipment
	}
	if g, ok := lookupEquipment(eq); ok {
		return clone(g), true
	}
	return clone(defaultGuidance), false
}

// EquipmentNote returns the one-line equipment note for an exercise.
func EquipmentNote(ex Exercise) string {
	g, _ := ResolveEquipment(ex)
	return g.Note
}

// EquipmentTips returns the equipment tips for an exercise.
func EquipmentTips(ex Exercise) []string {
	g, _ := ResolveEquipment(ex)
	return g.Tips
}

func lookupEquipment(eq string) (EquipmentGuidance, bool) {
	if g, ok := equipmentByKey(eq); ok {
		return g, true
	}
	for _, g := range equipmentTable {
		if strings.Contains(eq, g.Equipment) || strings.Contains(g.Equipment, eq) {
			return g, true
		}
	}
	for _, a := range equipmentAliases {
		if containsAny(eq, a.terms) {
			return equipmentByKey(a.key)
		}
	}
	return EquipmentGuidance{}, false
}

func equipmentByKey(key string) (EquipmentGuidance, bool) {
	for _, g := range equipmentTable {
		if g.Equipment == key {
			return g, true
		}
	}
	return EquipmentGuidance{}, false
}

func clone(g EquipmentGuidance) EquipmentGuidance {
	g.Tips = firstN(g.Tips, len(g.Tips))
	return g
}
