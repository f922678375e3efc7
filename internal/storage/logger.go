package storage

import (
	"context"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"devsrctool/internal/ctxkeys"
	"devsrctool/internal/logger"
)

// gormLogger 把 GORM 的日志桥接到本仓库的 Logger
type gormLogger struct {
	log   logger.Logger
	level gormlogger.LogLevel
}

// newGormLogger 创建 GORM 日志桥
func newGormLogger(l logger.Logger) *gormLogger {
	return &gormLogger{log: l, level: gormlogger.Warn}
}

// LogMode 设置日志级别
func (g *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *g
	next.level = level
	return &next
}

// Info 打印 info 级别日志
func (g *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Info {
		g.log.Info(msg, append([]any{"traceId", ctxkeys.TraceID(ctx)}, data...)...)
	}
}

// Warn 打印 warn 级别日志
func (g *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Warn {
		g.log.Warn(msg, append([]any{"traceId", ctxkeys.TraceID(ctx)}, data...)...)
	}
}

// Error 打印 error 级别日志
func (g *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Error {
		g.log.Error(msg, append([]any{"traceId", ctxkeys.TraceID(ctx)}, data...)...)
	}
}

// Trace 打印 SQL 执行日志
func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []any{
		"traceId", ctxkeys.TraceID(ctx),
		"sql", sql,
		"rows", rows,
		"timeMs", float64(elapsed.Nanoseconds()) / 1e6,
	}

	switch {
	case err != nil && g.level >= gormlogger.Error:
		g.log.Err(err, "SQL执行错误", fields...)
	case elapsed > time.Second && g.level >= gormlogger.Warn:
		g.log.Warn("慢SQL查询", append(fields, "threshold", "1s")...)
	case g.level >= gormlogger.Info:
		g.log.Debug("SQL执行", fields...)
	}
}
