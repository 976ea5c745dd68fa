package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseRace(t *testing.T) {
	tests := []struct {
		in      string
		want    Race
		wantErr bool
	}{
		{"Solozo", RaceSolozo, false},
		{"barab", RaceBarab, false},
		{" TWILIGHTER ", RaceTwilighter, false},
		{"other", RaceOther, false},
		{"Elf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRace(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRace) {
					t.Fatalf("expected ErrInvalidRace, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseRace(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestRaceJSONRejectsUnknown(t *testing.T) {
	var char Character
	if err := json.Unmarshal([]byte(`{"race":"Dragon"}`), &char); !errors.Is(err, ErrInvalidRace) {
		t.Fatalf("expected ErrInvalidRace, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"race":"Barab"}`), &char); err != nil || char.Race != RaceBarab {
		t.Fatalf("unmarshal valid race: %v %q", err, char.Race)
	}
}

func TestCharacterValidate(t *testing.T) {
	tests := []struct {
		name    string
		char    Character
		wantErr bool
	}{
		{"valid", Character{Race: RaceOther, LifeForce: 5, Skills: map[string]int{"survival": 0}}, false},
		{"zero life force", Character{Race: RaceBarab}, false},
		{"bad race", Character{Race: "Elf", LifeForce: 5}, true},
		{"negative life force", Character{Race: RaceBarab, LifeForce: -1}, true},
		{"negative skill", Character{Race: RaceSolozo, LifeForce: 5, Skills: map[string]int{"stealth": -2}}, true},
		{"negative characteristic", Character{Race: RaceBarab, LifeForce: 5, Characteristics: map[string]int{"strength": -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.char.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCharacter) {
				t.Fatalf("expected ErrInvalidCharacter, got %v", err)
			}
		})
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		tier    Tier
		text    string
		success bool
	}{
		{TierExtraordinarySuccess, "Extraordinary success!", true},
		{TierClearSuccess, "Clear success!", true},
		{TierNarrowSuccess, "Narrow success!", true},
		{TierCatastrophicFailure, "Catastrophic failure!", false},
		{TierSignificantFailure, "Significant failure!", false},
		{TierNarrowFailure, "Narrow failure!", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if tt.tier.String() != tt.text || tt.tier.Success() != tt.success {
				t.Fatalf("%d: %q success=%v", tt.tier, tt.tier.String(), tt.tier.Success())
			}

			data, err := json.Marshal(tt.tier)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back Tier
			if err := json.Unmarshal(data, &back); err != nil || back != tt.tier {
				t.Fatalf("unmarshal %s: %v %v", data, back, err)
			}
		})
	}
}

func TestTierJSONRejectsUnknown(t *testing.T) {
	var result ActionResult
	err := json.Unmarshal([]byte(`{"tier":"Mild success!"}`), &result)
	if !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"tier":3}`), &result); err == nil {
		t.Fatal("expected error for numeric tier")
	}

	var zero Tier
	data, err := json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Tier = TierClearSuccess
	if err := json.Unmarshal(data, &back); err != nil || back != TierUnspecified {
		t.Fatalf("unspecified round trip: %v %v", back, err)
	}
}
