// Package config 读取服务配置：默认值 < config.yml < URB_ 环境变量
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "URB_"

// Default 默认配置
func Default() *models.Config {
	return &models.Config{
		Server: models.ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Database: models.DatabaseConfig{
			Path: "data/urb.db",
		},
		Log: models.LogConfig{
			Level: "info",
		},
	}
}

// Load 加载配置，配置文件不存在时只使用默认值和环境变量
func Load(path string) (*models.Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("读取配置失败: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("解析配置 %s 失败: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}

	if cfg.Server.Port == "" {
		return nil, errors.New("服务端口为空")
	}
	if cfg.Database.Path == "" {
		return nil, errors.New("数据库路径为空")
	}

	return cfg, nil
}
