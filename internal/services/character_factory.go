package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/gamedata"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/random"
)

// CharacterFactory 按种族生成初始角色
type CharacterFactory struct {
	rng   random.Source
	table *gamedata.Table
}

func NewCharacterFactory(rng random.Source, table *gamedata.Table) *CharacterFactory {
	return &CharacterFactory{
		rng:   rng,
		table: table,
	}
}

// Create 创建新角色
func (cf *CharacterFactory) Create(name string, race models.Race, background string) (*models.Character, error) {
	stats, ok := cf.table.Race(race)
	if !race.Valid() || !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidRace, race)
	}

	lf := cf.table.LifeForce()
	lifeForce := cf.rng.Between(lf.Min(), lf.Max())
	skills := cf.draw(stats.Skills)
	characteristics := cf.draw(stats.Characteristics)
	now := time.Now()

	return &models.Character{
		ID:                 uuid.New().String(),
		Name:               name,
		Race:               race,
		Background:         background,
		LifeForce:          lifeForce,
		ExperienceModifier: 0,
		Skills:             skills,
		Characteristics:    characteristics,
		Inventory:          []string{},
		SessionHistory:     []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (cf *CharacterFactory) draw(stats []gamedata.Stat) map[string]int {
	out := make(map[string]int, len(stats))
	for _, s := range stats {
		out[s.Name] = cf.rng.Between(s.Range.Min(), s.Range.Max())
	}
	return out
}
