package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/gamedata"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/services"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/storage"
)

type Handler struct {
	sessionService   *services.SessionService
	characterService *services.CharacterService
	table            *gamedata.Table
	logger           *zap.Logger
}

func NewHandler(sessionService *services.SessionService, characterService *services.CharacterService,
	table *gamedata.Table, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessionService:   sessionService,
		characterService: characterService,
		table:            table,
		logger:           logger,
	}
}

// statusFor 把服务层错误映射为HTTP状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNoCharacter):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidRace),
		errors.Is(err, models.ErrInvalidCharacter),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrEmptyAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("请求失败", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// CreateSession 开始新冒险
func (h *Handler) CreateSession(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}

	// 允许空请求体，使用默认名称
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListSessions 会话列表
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListSessions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSession 获取会话
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession 删除会话
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessionService.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SaveCharacter 创建或编辑会话中的角色
func (h *Handler) SaveCharacter(c *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required"`
		Race       string `json:"race" binding:"required"`
		Background string `json:"background"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and race are required"})
		return
	}

	race, err := models.ParseRace(req.Race)
	if err != nil {
		h.fail(c, err)
		return
	}

	session, err := h.characterService.SaveCharacter(c.Request.Context(), c.Param("id"), req.Name, race, req.Background)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ApplyCharacterChanges 角色成长
func (h *Handler) ApplyCharacterChanges(c *gin.Context) {
	var changes models.CharacterChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	char, err := h.characterService.ApplyChanges(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, char)
}

// SendMessage 玩家发言
func (h *Handler) SendMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	session, err := h.sessionService.SendMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// TakeAction 行动检定
func (h *Handler) TakeAction(c *gin.Context) {
	var req struct {
		Action     string `json:"action" binding:"required"`
		Difficulty *int   `json:"difficulty" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action and integer difficulty are required"})
		return
	}

	result, session, err := h.sessionService.TakeAction(c.Request.Context(), c.Param("id"), req.Action, *req.Difficulty)
	if errors.Is(err, services.ErrNoCharacter) {
		// 系统提示已写入会话，一并返回
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"session": session,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  result,
		"session": session,
	})
}

// RollDice 单独投运气骰
func (h *Handler) RollDice(c *gin.Context) {
	result := h.sessionService.RollDice()

	c.JSON(http.StatusOK, gin.H{
		"result":    result,
		"formatted": services.FormatRoll(result),
	})
}

// ListPresets 快捷行动
func (h *Handler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": h.table.Presets()})
}

// GetLore 世界设定
func (h *Handler) GetLore(c *gin.Context) {
	c.JSON(http.StatusOK, h.table.Lore())
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
