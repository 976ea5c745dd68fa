package services

import (
	"strings"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/gamedata"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
)

// Narrator 按关键词查找预设叙述
type Narrator struct {
	rules    []gamedata.NarratorRule
	fallback string
}

func NewNarrator(table *gamedata.Table) *Narrator {
	return &Narrator{
		rules:    table.NarratorRules(),
		fallback: table.NarratorFallback(),
	}
}

// Respond 第一条命中的规则生效
func (n *Narrator) Respond(input string, char *models.Character) string {
	text := strings.ToLower(input)
	for _, rule := range n.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return fill(rule.Response, char)
			}
		}
	}
	return fill(n.fallback, char)
}

func fill(template string, char *models.Character) string {
	if char == nil {
		return template
	}
	return strings.NewReplacer("{name}", char.Name, "{race}", string(char.Race)).Replace(template)
}
