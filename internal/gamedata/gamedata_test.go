package gamedata

import (
	"errors"
	"reflect"
	"testing"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
)

func TestDefaultActionTable(t *testing.T) {
	want := map[string][]string{
		"lifting":    {"strength"},
		"running":    {"agility", "endurance"},
		"fighting":   {"strength", "agility"},
		"climbing":   {"strength", "agility"},
		"research":   {"intelligence"},
		"persuasion": {"charisma"},
		"perception": {"perception", "intuition"},
		"stealth":    {"agility"},
	}

	table := Default()
	for action, names := range want {
		got, ok := table.Characteristics(action)
		if !ok {
			t.Fatalf("action %q missing", action)
		}
		if !reflect.DeepEqual(got, names) {
			t.Errorf("Characteristics(%q) = %v, want %v", action, got, names)
		}
	}
	if _, ok := table.Characteristics("explore"); ok {
		t.Error("explore should not map to characteristics")
	}
}

func TestDefaultRaceKeys(t *testing.T) {
	tests := []struct {
		race            models.Race
		skills          []string
		characteristics []string
	}{
		{models.RaceSolozo, []string{"diplomacy", "research", "stealth", "technology"}, nil},
		{models.RaceBarab, nil, []string{"agility", "endurance", "perception", "strength"}},
		{models.RaceTwilighter, []string{"mysticism", "perception"}, []string{"intuition", "willpower"}},
		{models.RaceOther, []string{"communication", "survival"}, []string{"agility", "strength"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.race), func(t *testing.T) {
			stats, ok := Default().Race(tt.race)
			if !ok {
				t.Fatalf("race %s missing", tt.race)
			}
			if got := statNames(stats.Skills); !reflect.DeepEqual(got, tt.skills) {
				t.Errorf("skills = %v, want %v", got, tt.skills)
			}
			if got := statNames(stats.Characteristics); !reflect.DeepEqual(got, tt.characteristics) {
				t.Errorf("characteristics = %v, want %v", got, tt.characteristics)
			}
		})
	}
}

func TestDefaultScalars(t *testing.T) {
	table := Default()
	if min, max := table.DiceFaces(); min != 1 || max != 10 {
		t.Fatalf("dice faces = [%d, %d], want [1, 10]", min, max)
	}
	if lf := table.LifeForce(); lf.Min() != 5 || lf.Max() != 10 {
		t.Fatalf("life force = %v, want [5 10]", lf)
	}
	if got := len(table.Presets()); got != 3 {
		t.Fatalf("presets = %d, want 3", got)
	}
	if table.NarratorFallback() == "" {
		t.Fatal("expected narrator fallback")
	}
	if got := len(table.Lore().CoreNarratives); got != 3 {
		t.Fatalf("core narratives = %d, want 3", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	table := Default()

	names, _ := table.Characteristics("running")
	names[0] = "charisma"
	again, _ := table.Characteristics("running")
	if again[0] != "agility" {
		t.Fatalf("table mutated through Characteristics: %v", again)
	}

	stats, _ := table.Race(models.RaceBarab)
	stats.Characteristics[0].Range = Range{99, 99}
	fresh, _ := table.Race(models.RaceBarab)
	if fresh.Characteristics[0].Range.Max() == 99 {
		t.Fatal("table mutated through Race")
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	base := `
dice: {min: 1, max: 10}
life_force: [5, 10]
actions: {lifting: [strength]}
races:
  Solozo: {}
  Barab: {}
  Twilighter: {}
  Other: {}
`
	if _, err := Load([]byte(base)); err != nil {
		t.Fatalf("base table should load: %v", err)
	}

	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "dice: [nope"},
		{"dice max below min", "dice: {min: 5, max: 2}\nlife_force: [5, 10]"},
		{"inverted life force", "dice: {min: 1, max: 10}\nlife_force: [10, 5]"},
		{"empty action", "dice: {min: 1, max: 10}\nlife_force: [5, 10]\nactions: {lifting: []}\n"},
		{"missing race", "dice: {min: 1, max: 10}\nlife_force: [5, 10]\nraces:\n  Solozo: {}\n"},
		{"unknown race", base + "  Elf: {}\n"},
		{"inverted stat", "dice: {min: 1, max: 10}\nlife_force: [5, 10]\nraces:\n  Solozo:\n    skills: {stealth: [3, 1]}\n  Barab: {}\n  Twilighter: {}\n  Other: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			if !errors.Is(err, ErrInvalidTable) {
				t.Fatalf("Load() error = %v, want ErrInvalidTable", err)
			}
		})
	}
}

func statNames(stats []Stat) []string {
	if len(stats) == 0 {
		return nil
	}
	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Name
	}
	return names
}
