package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/storage"
)

var (
	// ErrEmptyMessage 消息内容为空
	ErrEmptyMessage = errors.New("message content is empty")
	// ErrEmptyAction 行动为空
	ErrEmptyAction = errors.New("action is empty")
)

const defaultSessionName = "New Adventure"

// SessionService 冒险会话：聊天回合与行动检定
type SessionService struct {
	storage    *storage.Storage
	ruleEngine *RuleEngine
	narrator   *Narrator
	logger     *zap.Logger
}

func NewSessionService(storage *storage.Storage, ruleEngine *RuleEngine, narrator *Narrator, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		storage:    storage,
		ruleEngine: ruleEngine,
		narrator:   narrator,
		logger:     logger,
	}
}

// CreateSession 开始新冒险
func (ss *SessionService) CreateSession(ctx context.Context, name string) (*models.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultSessionName
	}

	now := time.Now()
	session := &models.Session{
		ID:              uuid.New().String(),
		Name:            name,
		Messages:        []models.Message{},
		CurrentLocation: "Unknown",
		ActiveNPCs:      []string{},
		NarrativeState:  "Beginning of adventure",
		Timeline:        []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	session.Messages = append(session.Messages, newMessage(
		"Welcome to the URB World! Create a character to begin your adventure.",
		models.SenderDM,
	))

	if err := ss.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("保存会话失败: %w", err)
	}

	ss.logger.Info("会话已创建", zap.String("session_id", session.ID), zap.String("name", name))

	return session, nil
}

// GetSession 获取会话
func (ss *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return ss.storage.GetSession(ctx, sessionID)
}

// ListSessions 会话列表
func (ss *SessionService) ListSessions(ctx context.Context) ([]models.SessionSummary, error) {
	return ss.storage.ListSessions(ctx)
}

// DeleteSession 删除会话
func (ss *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ss.storage.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	ss.logger.Info("会话已删除", zap.String("session_id", sessionID))
	return nil
}

// SendMessage 玩家发言，由叙述者回应
func (ss *SessionService) SendMessage(ctx context.Context, sessionID, content string) (*models.Session, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	session, err := ss.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("读取会话失败: %w", err)
	}

	session.Messages = append(session.Messages, newMessage(content, models.SenderPlayer))
	if session.Character != nil {
		session.Messages = append(session.Messages, newMessage(ss.narrator.Respond(content, session.Character), models.SenderDM))
	} else {
		session.Messages = append(session.Messages, newMessage(
			"Please create a character before continuing your adventure.",
			models.SenderSystem,
		))
	}

	session.UpdatedAt = time.Now()
	if err := ss.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("保存会话失败: %w", err)
	}

	return session, nil
}

// TakeAction 执行行动检定并记录到会话
//
// 没有角色时不调用检定引擎，只记录系统提示并返回ErrNoCharacter。
func (ss *SessionService) TakeAction(ctx context.Context, sessionID, action string, difficulty int) (*models.ActionResult, *models.Session, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, nil, ErrEmptyAction
	}

	session, err := ss.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("读取会话失败: %w", err)
	}

	char := session.Character
	if char == nil {
		session.Messages = append(session.Messages, newMessage("You need a character to perform actions.", models.SenderSystem))
		session.UpdatedAt = time.Now()
		if err := ss.storage.SaveSession(ctx, session); err != nil {
			return nil, nil, fmt.Errorf("保存会话失败: %w", err)
		}
		return nil, session, ErrNoCharacter
	}

	if err := char.Validate(); err != nil {
		return nil, nil, err
	}

	result := ss.ruleEngine.ResolveAction(char, action, difficulty)

	ss.logger.Info("行动检定",
		zap.String("session_id", sessionID),
		zap.String("action", action),
		zap.Int("difficulty", difficulty),
		zap.Bool("success", result.Success),
		zap.Int("degree", result.Degree),
		zap.Bool("exploded", result.DiceResult.Exploded),
	)

	rollMsg := newMessage(
		fmt.Sprintf("%s attempts to %s (Difficulty: %d)...\n%s", char.Name, action, difficulty, FormatRoll(result.DiceResult)),
		models.SenderSystem,
	)
	recorded := result
	rollMsg.Action = &recorded
	session.Messages = append(session.Messages, rollMsg)
	session.Messages = append(session.Messages, newMessage(outcomeLine(action, result), models.SenderDM))

	session.UpdatedAt = time.Now()
	if err := ss.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("保存会话失败: %w", err)
	}

	return &result, session, nil
}

// RollDice 不绑定会话的运气骰
func (ss *SessionService) RollDice() models.DiceResult {
	return ss.ruleEngine.Roll()
}

func outcomeLine(action string, result models.ActionResult) string {
	verb := "fails"
	if result.Success {
		verb = "succeeds"
	}
	var dramatic string
	if result.Degree > 3 {
		dramatic = " dramatically"
	}
	return fmt.Sprintf("%s Your attempt to %s %s%s.", result.Description, action, verb, dramatic)
}

func newMessage(content string, sender models.Sender) models.Message {
	return models.Message{
		ID:        uuid.New().String(),
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now(),
	}
}
