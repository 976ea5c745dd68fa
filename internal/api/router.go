package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter 注册全部路由
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	r.GET("/healthz", h.Health)

	apiGroup := r.Group("/api")
	{
		// 会话相关
		apiGroup.POST("/sessions", h.CreateSession)
		apiGroup.GET("/sessions", h.ListSessions)
		apiGroup.GET("/sessions/:id", h.GetSession)
		apiGroup.DELETE("/sessions/:id", h.DeleteSession)
		apiGroup.POST("/sessions/:id/messages", h.SendMessage)
		apiGroup.POST("/sessions/:id/actions", h.TakeAction)

		// 角色相关
		apiGroup.PUT("/sessions/:id/character", h.SaveCharacter)
		apiGroup.POST("/sessions/:id/character/changes", h.ApplyCharacterChanges)

		// 规则与设定
		apiGroup.POST("/dice", h.RollDice)
		apiGroup.GET("/actions/presets", h.ListPresets)
		apiGroup.GET("/lore", h.GetLore)
	}

	return r
}

// RequestLogger 记录每个请求
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("请求",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
