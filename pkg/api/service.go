package api

import (
	"context"

	"devsrctool/internal/config"
	"devsrctool/internal/event"
	"devsrctool/internal/logger"
	"devsrctool/internal/service"
	"devsrctool/internal/storage"
	"devsrctool/pkg/domain"
)

// Service 源归因服务对外接口
type Service interface {
	// StartSession 启动调试会话
	StartSession() (domain.SessionID, error)

	// StopSession 停止调试会话
	StopSession(id domain.SessionID) error

	// SubscribeControl 订阅会话的控制消息流
	SubscribeControl(id domain.SessionID) (<-chan domain.ControlMsg, error)

	// NotifyNewSource 上报一条引擎新脚本源通知
	NotifyNewSource(id domain.SessionID, n domain.SourceNotification) error

	// NotifyDebuggeeAdded 派发 debuggee added 本地事件
	NotifyDebuggeeAdded(pipeline domain.PipelineID, workerID *domain.WorkerID)

	// RegisterDebuggeeListener 注册 debuggee added 监听器
	RegisterDebuggeeListener(l event.Listener) (unregister func())

	// AttachTarget 为会话附加 Chromium 调试目标
	AttachTarget(ctx context.Context, id domain.SessionID, target string) error

	// DetachTarget 断开会话的摄取端
	DetachTarget(id domain.SessionID) error

	// ListSources 按管线列出已持久化的源记录
	ListSources(pipeline domain.PipelineID) ([]storage.SourceRecord, error)

	// Close 释放所有资源
	Close() error
}

// NewService 创建并返回服务接口实现
func NewService(cfg *config.Config, l logger.Logger) (Service, error) {
	return service.New(cfg, l)
}
