package config

// DevToolsConfig 浏览器调试端点配置
type DevToolsConfig struct {
	URL       string `yaml:"url"`
	Namespace uint32 `yaml:"namespace"`
}

// SinkConfig 控制消息通道配置
type SinkConfig struct {
	Capacity int `yaml:"capacity"`
}

// SqliteConfig 源记录目录的 sqlite 配置；dsn 为空时禁用持久化
type SqliteConfig struct {
	Dsn    string `yaml:"dsn"`
	Prefix string `yaml:"prefix"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string   `yaml:"level"`
	Writer []string `yaml:"writer"`
	File   string   `yaml:"file"`
}

// Config 配置文件结构体
type Config struct {
	Version  string         `yaml:"version"`
	DevTools DevToolsConfig `yaml:"devtools"`
	Sink     SinkConfig     `yaml:"sink"`
	Sqlite   SqliteConfig   `yaml:"sqlite"`
	Log      LogConfig      `yaml:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Version: "1.0.0",
		DevTools: DevToolsConfig{
			URL:       "http://127.0.0.1:9222",
			Namespace: 1,
		},
		Sink: SinkConfig{
			Capacity: 256,
		},
		Sqlite: SqliteConfig{
			Dsn:    "sources.sqlite3",
			Prefix: "devsrctool_",
		},
		Log: LogConfig{
			Level:  "debug",
			Writer: []string{"console", "file"},
			File:   "devsrctool.log",
		},
	}
}
