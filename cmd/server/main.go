package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/api"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/config"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/gamedata"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/random"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/services"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/storage"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 初始化数据库
	store, err := storage.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal("初始化数据库失败", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer store.Close()

	rng, err := newSource(cfg.Game)
	if err != nil {
		logger.Fatal("初始化随机源失败", zap.Error(err))
	}

	// 初始化服务
	table := gamedata.Default()
	ruleEngine := services.NewRuleEngine(rng, table, logger.Named("rules"))
	factory := services.NewCharacterFactory(rng, table)
	narrator := services.NewNarrator(table)
	characterService := services.NewCharacterService(store, factory, logger.Named("characters"))
	sessionService := services.NewSessionService(store, ruleEngine, narrator, logger.Named("sessions"))

	handler := api.NewHandler(sessionService, characterService, table, logger.Named("api"))

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(handler, logger.Named("http"))

	// 启动服务器
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("URB World 服务启动", zap.String("addr", addr), zap.String("database", cfg.Database.Path))

	if err := r.Run(addr); err != nil {
		logger.Fatal("启动服务器失败", zap.Error(err))
	}
}

func newLogger(cfg models.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("解析日志级别失败: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// newSource 配置了种子时可复现，否则使用加密随机种子
func newSource(cfg models.GameConfig) (random.Source, error) {
	if cfg.Seed != 0 {
		return random.New(cfg.Seed), nil
	}
	src, err := random.NewCrypto()
	if err != nil {
		return nil, err
	}
	return src, nil
}
