// Package gamedata 加载内嵌的静态游戏数据（行动映射、种族初始属性、叙述关键词、世界设定）
//
// 数据在进程启动时解析一次，之后只读。所有访问器返回副本。
package gamedata

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
)

//go:embed gamedata.yml
var embedded []byte

// ErrInvalidTable 游戏数据格式错误
var ErrInvalidTable = errors.New("invalid game data")

// Range 闭区间[min, max]
type Range [2]int

func (r Range) Min() int { return r[0] }
func (r Range) Max() int { return r[1] }

// Stat 命名属性及其初始取值范围
type Stat struct {
	Name  string `json:"name"`
	Range Range  `json:"range"`
}

// RaceStats 种族初始属性表，按名称排序
type RaceStats struct {
	Skills          []Stat `json:"skills"`
	Characteristics []Stat `json:"characteristics"`
}

// Preset 快捷行动
type Preset struct {
	Action     string `yaml:"action" json:"action"`
	Label      string `yaml:"label" json:"label"`
	Difficulty int    `yaml:"difficulty" json:"difficulty"`
}

// NarratorRule 关键词叙述规则
type NarratorRule struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
	Response string   `yaml:"response" json:"response"`
}

// LoreEntry 世界设定条目
type LoreEntry struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Lore 世界设定
type Lore struct {
	Locations      []LoreEntry `yaml:"locations" json:"locations"`
	Races          []LoreEntry `yaml:"races" json:"races"`
	Concepts       []LoreEntry `yaml:"concepts" json:"concepts"`
	Factions       []LoreEntry `yaml:"factions" json:"factions"`
	CoreNarratives []LoreEntry `yaml:"core_narratives" json:"core_narratives"`
}

type rawRace struct {
	Skills          map[string]Range `yaml:"skills"`
	Characteristics map[string]Range `yaml:"characteristics"`
}

type rawTable struct {
	Dice struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"dice"`
	LifeForce Range                   `yaml:"life_force"`
	Actions   map[string][]string     `yaml:"actions"`
	Races     map[models.Race]rawRace `yaml:"races"`
	Presets   []Preset                `yaml:"presets"`
	Narrator  struct {
		Rules    []NarratorRule `yaml:"rules"`
		Fallback string         `yaml:"fallback"`
	} `yaml:"narrator"`
	Lore Lore `yaml:"lore"`
}

// Table 只读游戏数据
type Table struct {
	diceMin, diceMax int
	lifeForce        Range
	actions          map[string][]string
	races            map[models.Race]RaceStats
	presets          []Preset
	rules            []NarratorRule
	fallback         string
	lore             Lore
}

var defaultTable = mustLoad(embedded)

// Default 返回内嵌数据表
func Default() *Table {
	return defaultTable
}

func mustLoad(data []byte) *Table {
	t, err := Load(data)
	if err != nil {
		panic(fmt.Sprintf("gamedata: %v", err))
	}
	return t
}

// Load 解析并校验游戏数据
func Load(data []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	if raw.Dice.Min < 1 || raw.Dice.Max <= raw.Dice.Min {
		return nil, fmt.Errorf("%w: 骰面 [%d, %d]", ErrInvalidTable, raw.Dice.Min, raw.Dice.Max)
	}
	if err := checkRange("life_force", raw.LifeForce); err != nil {
		return nil, err
	}

	t := &Table{
		diceMin:   raw.Dice.Min,
		diceMax:   raw.Dice.Max,
		lifeForce: raw.LifeForce,
		actions:   make(map[string][]string, len(raw.Actions)),
		races:     make(map[models.Race]RaceStats, len(raw.Races)),
		presets:   raw.Presets,
		rules:     raw.Narrator.Rules,
		fallback:  raw.Narrator.Fallback,
		lore:      raw.Lore,
	}

	for action, names := range raw.Actions {
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: 行动 %q 没有关联特征", ErrInvalidTable, action)
		}
		t.actions[action] = append([]string(nil), names...)
	}

	for race, stats := range raw.Races {
		if !race.Valid() {
			return nil, fmt.Errorf("%w: 未知种族 %q", ErrInvalidTable, race)
		}
		skills, err := sortedStats(race, stats.Skills)
		if err != nil {
			return nil, err
		}
		characteristics, err := sortedStats(race, stats.Characteristics)
		if err != nil {
			return nil, err
		}
		t.races[race] = RaceStats{Skills: skills, Characteristics: characteristics}
	}
	for _, race := range models.Races {
		if _, ok := t.races[race]; !ok {
			return nil, fmt.Errorf("%w: 缺少种族 %q", ErrInvalidTable, race)
		}
	}

	for _, p := range t.presets {
		if p.Action == "" {
			return nil, fmt.Errorf("%w: 预设缺少行动", ErrInvalidTable)
		}
	}
	for _, r := range t.rules {
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("%w: 叙述规则缺少关键词", ErrInvalidTable)
		}
	}

	return t, nil
}

func checkRange(name string, r Range) error {
	if r.Min() < 0 || r.Max() < r.Min() {
		return fmt.Errorf("%w: %s 区间 [%d, %d]", ErrInvalidTable, name, r.Min(), r.Max())
	}
	return nil
}

// sortedStats 按名称排序，保证固定种子下抽取顺序稳定
func sortedStats(race models.Race, in map[string]Range) ([]Stat, error) {
	out := make([]Stat, 0, len(in))
	for name, r := range in {
		if err := checkRange(string(race)+"."+name, r); err != nil {
			return nil, err
		}
		out = append(out, Stat{Name: name, Range: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DiceFaces 骰面范围，最大面触发爆骰
func (t *Table) DiceFaces() (min, max int) {
	return t.diceMin, t.diceMax
}

// LifeForce 初始生命力范围
func (t *Table) LifeForce() Range {
	return t.lifeForce
}

// Characteristics 行动对应的特征列表
func (t *Table) Characteristics(action string) ([]string, bool) {
	names, ok := t.actions[action]
	if !ok {
		return nil, false
	}
	return append([]string(nil), names...), true
}

// Race 种族初始属性表
func (t *Table) Race(race models.Race) (RaceStats, bool) {
	stats, ok := t.races[race]
	if !ok {
		return RaceStats{}, false
	}
	return RaceStats{
		Skills:          append([]Stat(nil), stats.Skills...),
		Characteristics: append([]Stat(nil), stats.Characteristics...),
	}, true
}

// Presets 快捷行动列表
func (t *Table) Presets() []Preset {
	return append([]Preset(nil), t.presets...)
}

// NarratorRules 叙述规则（按优先级）
func (t *Table) NarratorRules() []NarratorRule {
	out := make([]NarratorRule, len(t.rules))
	for i, r := range t.rules {
		out[i] = NarratorRule{Keywords: append([]string(nil), r.Keywords...), Response: r.Response}
	}
	return out
}

// NarratorFallback 无关键词命中时的叙述
func (t *Table) NarratorFallback() string {
	return t.fallback
}

// Lore 世界设定
func (t *Table) Lore() Lore {
	return Lore{
		Locations:      append([]LoreEntry(nil), t.lore.Locations...),
		Races:          append([]LoreEntry(nil), t.lore.Races...),
		Concepts:       append([]LoreEntry(nil), t.lore.Concepts...),
		Factions:       append([]LoreEntry(nil), t.lore.Factions...),
		CoreNarratives: append([]LoreEntry(nil), t.lore.CoreNarratives...),
	}
}
