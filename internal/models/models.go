package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRace 种族不在枚举范围内
var ErrInvalidRace = errors.New("invalid race")

// ErrInvalidCharacter 角色数值非法
var ErrInvalidCharacter = errors.New("invalid character")

// ErrInvalidTier 无法识别的结果档位
var ErrInvalidTier = errors.New("invalid tier")

// Race 种族
type Race string

const (
	RaceSolozo     Race = "Solozo"
	RaceBarab      Race = "Barab"
	RaceTwilighter Race = "Twilighter"
	RaceOther      Race = "Other"
)

// Races 全部合法种族（按显示顺序）
var Races = []Race{RaceSolozo, RaceBarab, RaceTwilighter, RaceOther}

// ParseRace 解析种族名（忽略大小写）
func ParseRace(s string) (Race, error) {
	for _, r := range Races {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRace, s)
}

// Valid 是否为合法种族
func (r Race) Valid() bool {
	for _, known := range Races {
		if r == known {
			return true
		}
	}
	return false
}

func (r *Race) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRace, err)
	}
	parsed, err := ParseRace(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Character 玩家角色
type Character struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Race               Race           `json:"race"`
	Background         string         `json:"background"`
	LifeForce          int            `json:"life_force"`
	ExperienceModifier int            `json:"experience_modifier"`
	Skills             map[string]int `json:"skills"`
	Characteristics    map[string]int `json:"characteristics"`
	Inventory          []string       `json:"inventory"`
	SessionHistory     []string       `json:"session_history"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Validate 校验角色，非法角色不得进入检定
func (c *Character) Validate() error {
	if !c.Race.Valid() {
		return fmt.Errorf("%w: 种族 %q", ErrInvalidCharacter, c.Race)
	}
	if c.LifeForce < 0 {
		return fmt.Errorf("%w: 生命力为负 %d", ErrInvalidCharacter, c.LifeForce)
	}
	for name, v := range c.Skills {
		if v < 0 {
			return fmt.Errorf("%w: 技能 %s 为 %d", ErrInvalidCharacter, name, v)
		}
	}
	for name, v := range c.Characteristics {
		if v < 0 {
			return fmt.Errorf("%w: 特征 %s 为 %d", ErrInvalidCharacter, name, v)
		}
	}
	return nil
}

// DiceResult 运气骰结果
type DiceResult struct {
	Positive int  `json:"positive"`
	Negative int  `json:"negative"`
	Net      int  `json:"net"`
	Exploded bool `json:"exploded"`
}

// Tier 行动结果档位
type Tier int

const (
	TierUnspecified Tier = iota
	TierExtraordinarySuccess
	TierClearSuccess
	TierNarrowSuccess
	TierCatastrophicFailure
	TierSignificantFailure
	TierNarrowFailure
)

func (t Tier) String() string {
	switch t {
	case TierExtraordinarySuccess:
		return "Extraordinary success!"
	case TierClearSuccess:
		return "Clear success!"
	case TierNarrowSuccess:
		return "Narrow success!"
	case TierCatastrophicFailure:
		return "Catastrophic failure!"
	case TierSignificantFailure:
		return "Significant failure!"
	case TierNarrowFailure:
		return "Narrow failure!"
	default:
		return "Unspecified"
	}
}

// Success 是否为成功档位
func (t Tier) Success() bool {
	return t == TierExtraordinarySuccess || t == TierClearSuccess || t == TierNarrowSuccess
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for candidate := TierUnspecified; candidate <= TierNarrowFailure; candidate++ {
		if candidate.String() == s {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidTier, s)
}

// ActionResult 行动结果
type ActionResult struct {
	Action      string     `json:"action"`
	Difficulty  int        `json:"difficulty"`
	Success     bool       `json:"success"`
	Degree      int        `json:"degree"`
	Tier        Tier       `json:"tier"`
	Description string     `json:"description"`
	DiceResult  DiceResult `json:"dice_result"`
}

// Sender 消息来源
type Sender string

const (
	SenderDM     Sender = "dm"
	SenderPlayer Sender = "player"
	SenderSystem Sender = "system"
)

// Message 会话消息
type Message struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Sender    Sender        `json:"sender"`
	Action    *ActionResult `json:"action,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Session 一次冒险
type Session struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Character       *Character `json:"character,omitempty"`
	Messages        []Message  `json:"messages"`
	CurrentLocation string     `json:"current_location"`
	ActiveNPCs      []string   `json:"active_npcs"`
	NarrativeState  string     `json:"narrative_state"`
	Timeline        []string   `json:"timeline"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SessionSummary 存档列表条目
type SessionSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CharacterName string    `json:"character_name,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CharacterChanges 角色成长变化
type CharacterChanges struct {
	ExperienceDelta int      `json:"experience_delta,omitempty"`
	LifeForceDelta  int      `json:"life_force_delta,omitempty"`
	ItemsGained     []string `json:"items_gained,omitempty"`
	ItemsLost       []string `json:"items_lost,omitempty"`
	HistoryEntries  []string `json:"history_entries,omitempty"`
}

// Config 配置
type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
	Game     GameConfig     `yaml:"game" envPrefix:"GAME_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT"`
	Host string `yaml:"host" env:"HOST"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

type GameConfig struct {
	// Seed 为0时使用crypto/rand生成种子
	Seed int64 `yaml:"seed" env:"SEED"`
}

type LogConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}
