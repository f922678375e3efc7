package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 统一的结构化日志接口，键值对以 key, value 交替传入
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	Err(err error, msg string, kv ...any)
	With(kv ...any) Logger
}

// Config 日志配置
type Config struct {
	Level   string   // debug/info/warn/error
	Writers []string // console/file
	File    string   // file writer 的目标路径
}

// zlogger 基于 zerolog 的 Logger 实现
type zlogger struct {
	zl zerolog.Logger
}

// New 按配置创建日志器；未知级别回落到 info，未指定 writer 时输出到控制台
func New(cfg Config) Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	for _, w := range cfg.Writers {
		switch w {
		case "console":
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
		case "file":
			file := cfg.File
			if file == "" {
				file = "devsrctool.log"
			}
			writers = append(writers, &lumberjack.Logger{
				Filename:   file,
				MaxSize:    50, // MB
				MaxBackups: 3,
				MaxAge:     14, // days
			})
		}
	}
	if len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return &zlogger{zl: zl}
}

// NewNop 创建丢弃所有输出的日志器，用于测试与缺省依赖
func NewNop() Logger {
	return &zlogger{zl: zerolog.Nop()}
}

func (l *zlogger) Debug(msg string, kv ...any) { emit(l.zl.Debug(), msg, kv) }
func (l *zlogger) Info(msg string, kv ...any)  { emit(l.zl.Info(), msg, kv) }
func (l *zlogger) Warn(msg string, kv ...any)  { emit(l.zl.Warn(), msg, kv) }
func (l *zlogger) Error(msg string, kv ...any) { emit(l.zl.Error(), msg, kv) }

func (l *zlogger) Err(err error, msg string, kv ...any) {
	emit(l.zl.Error().Err(err), msg, kv)
}

// With 派生携带固定字段的子日志器
func (l *zlogger) With(kv ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, kv[i+1])
	}
	return &zlogger{zl: ctx.Logger()}
}

func emit(ev *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
