package services

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/gamedata"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/random"
)

const explodingSuffix = " (Exploding dice!)"

// RuleEngine 检定引擎，除随机源外无状态，可并发使用
type RuleEngine struct {
	rng    random.Source
	table  *gamedata.Table
	logger *zap.Logger
}

func NewRuleEngine(rng random.Source, table *gamedata.Table, logger *zap.Logger) *RuleEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleEngine{
		rng:    rng,
		table:  table,
		logger: logger,
	}
}

// Roll 投运气骰：正负两骰各自独立爆骰
func (re *RuleEngine) Roll() models.DiceResult {
	positive, posExploded := re.rollSide()
	negative, negExploded := re.rollSide()

	return models.DiceResult{
		Positive: positive,
		Negative: negative,
		Net:      positive - negative,
		Exploded: posExploded || negExploded,
	}
}

// rollSide 掷出最大面时继续加骰，深度不设上限
func (re *RuleEngine) rollSide() (total int, exploded bool) {
	min, max := re.table.DiceFaces()
	for {
		face := re.rng.Between(min, max)
		total += face
		if face != max {
			return total, exploded
		}
		exploded = true
	}
}

// ResolveAttribute 取行动的基础值：技能 > 相关特征均值（向下取整） > 生命力/2
func (re *RuleEngine) ResolveAttribute(char *models.Character, action string) int {
	if level, ok := char.Skills[action]; ok {
		return level
	}

	if names, ok := re.table.Characteristics(action); ok {
		total, count := 0, 0
		for _, name := range names {
			if v, ok := char.Characteristics[name]; ok {
				total += v
				count++
			}
		}
		if count > 0 {
			return total / count
		}
	}

	return char.LifeForce / 2
}

// ResolveAction 执行行动检定
func (re *RuleEngine) ResolveAction(char *models.Character, action string, difficulty int) models.ActionResult {
	base := re.ResolveAttribute(char, action)
	dice := re.Roll()

	value := addClamped(addClamped(base, char.ExperienceModifier), addClamped(dice.Net, negateClamped(difficulty)))
	success := value > 0
	degree := value
	if degree < 0 {
		degree = -degree
	}

	tier := classify(success, degree)
	description := tier.String()
	if dice.Exploded {
		description += explodingSuffix
	}

	re.logger.Debug("检定结果",
		zap.String("character_id", char.ID),
		zap.String("action", action),
		zap.Int("base", base),
		zap.Int("experience", char.ExperienceModifier),
		zap.Int("difficulty", difficulty),
		zap.Int("positive", dice.Positive),
		zap.Int("negative", dice.Negative),
		zap.Int("result", value),
		zap.Stringer("tier", tier),
		zap.Bool("exploded", dice.Exploded),
	)

	return models.ActionResult{
		Action:      action,
		Difficulty:  difficulty,
		Success:     success,
		Degree:      degree,
		Tier:        tier,
		Description: description,
		DiceResult:  dice,
	}
}

// classify 按程度划分档位：>5 / 3-5 / <=2
func classify(success bool, degree int) models.Tier {
	switch {
	case success && degree > 5:
		return models.TierExtraordinarySuccess
	case success && degree > 2:
		return models.TierClearSuccess
	case success:
		return models.TierNarrowSuccess
	case degree > 5:
		return models.TierCatastrophicFailure
	case degree > 2:
		return models.TierSignificantFailure
	default:
		return models.TierNarrowFailure
	}
}

// FormatRoll 格式化骰子结果
func FormatRoll(result models.DiceResult) string {
	net := fmt.Sprintf("%d", result.Net)
	if result.Net > 0 {
		net = "+" + net
	}
	s := fmt.Sprintf("🎲 [+%d] vs [-%d] = Net: %s", result.Positive, result.Negative, net)
	if result.Exploded {
		s += " (Exploded!)"
	}
	return s
}

// addClamped 饱和加法，结果限制在[-MaxInt, MaxInt]，取绝对值不会溢出
func addClamped(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < -math.MaxInt-b:
		return -math.MaxInt
	}
	if sum := a + b; sum != math.MinInt {
		return sum
	}
	return -math.MaxInt
}

func negateClamped(a int) int {
	if a == math.MinInt {
		return math.MaxInt
	}
	return -a
}
