package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/storage"
)

// ErrNoCharacter 会话中还没有角色
var ErrNoCharacter = errors.New("session has no character")

// CharacterService 角色的创建、编辑与成长，是角色数据唯一的修改方
type CharacterService struct {
	storage *storage.Storage
	factory *CharacterFactory
	logger  *zap.Logger
}

func NewCharacterService(storage *storage.Storage, factory *CharacterFactory, logger *zap.Logger) *CharacterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CharacterService{
		storage: storage,
		factory: factory,
		logger:  logger,
	}
}

// SaveCharacter 无角色时创建，已有角色时只修改名字、种族和背景
func (cs *CharacterService) SaveCharacter(ctx context.Context, sessionID, name string, race models.Race, background string) (*models.Session, error) {
	if !race.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidRace, race)
	}

	session, err := cs.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("读取会话失败: %w", err)
	}

	now := time.Now()
	if session.Character == nil {
		char, err := cs.factory.Create(name, race, background)
		if err != nil {
			return nil, err
		}
		session.Character = char
		session.Messages = append(session.Messages, newMessage(
			fmt.Sprintf("Welcome, %s of the %s! Your adventure in the URB world begins now.", char.Name, char.Race),
			models.SenderDM,
		))
		cs.logger.Info("角色已创建",
			zap.String("session_id", sessionID),
			zap.String("character_id", char.ID),
			zap.String("race", string(char.Race)),
			zap.Int("life_force", char.LifeForce),
		)
	} else {
		session.Character.Name = name
		session.Character.Race = race
		session.Character.Background = background
		session.Character.UpdatedAt = now
	}

	session.UpdatedAt = now
	if err := cs.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("保存会话失败: %w", err)
	}

	return session, nil
}

// GetCharacter 获取会话中的角色
func (cs *CharacterService) GetCharacter(ctx context.Context, sessionID string) (*models.Character, error) {
	session, err := cs.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("读取会话失败: %w", err)
	}
	if session.Character == nil {
		return nil, ErrNoCharacter
	}
	return session.Character, nil
}

// ApplyChanges 应用成长变化
func (cs *CharacterService) ApplyChanges(ctx context.Context, sessionID string, changes models.CharacterChanges) (*models.Character, error) {
	session, err := cs.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("读取会话失败: %w", err)
	}
	char := session.Character
	if char == nil {
		return nil, ErrNoCharacter
	}

	char.ExperienceModifier = addClamped(char.ExperienceModifier, changes.ExperienceDelta)

	char.LifeForce = addClamped(char.LifeForce, changes.LifeForceDelta)
	if char.LifeForce < 0 {
		char.LifeForce = 0
	}

	// 处理道具
	char.Inventory = append(char.Inventory, changes.ItemsGained...)

	// 移除道具
	for _, lost := range changes.ItemsLost {
		for i, item := range char.Inventory {
			if item == lost {
				char.Inventory = append(char.Inventory[:i], char.Inventory[i+1:]...)
				break
			}
		}
	}

	char.SessionHistory = append(char.SessionHistory, changes.HistoryEntries...)

	now := time.Now()
	char.UpdatedAt = now
	session.UpdatedAt = now

	if err := cs.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("保存会话失败: %w", err)
	}

	cs.logger.Info("角色已成长",
		zap.String("session_id", sessionID),
		zap.Int("experience_modifier", char.ExperienceModifier),
		zap.Int("life_force", char.LifeForce),
		zap.Int("inventory", len(char.Inventory)),
	)

	return char, nil
}
