package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 配置文件查找顺序：显式路径 > DEVSRCTOOL_CONFIG 环境变量 > 工作目录默认文件
const (
	envConfigPath     = "DEVSRCTOOL_CONFIG"
	defaultConfigFile = "devsrctool.yaml"
)

// Load 加载配置；找不到任何配置文件时返回默认配置
func Load(path string) (*Config, error) {
	resolved := resolvePath(path)
	if resolved == "" {
		return NewConfig(), nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", resolved, err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", resolved, err)
	}
	if cfg.Sink.Capacity <= 0 {
		return nil, fmt.Errorf("config %q: sink.capacity must be positive", resolved)
	}
	return cfg, nil
}

func resolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(envConfigPath); env != "" {
		return env
	}
	if fileExists(defaultConfigFile) {
		return defaultConfigFile
	}
	return ""
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}
