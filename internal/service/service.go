// Package service 组装会话、裁决器、目录与摄取端，承载对外的服务实现。
package service

import (
	"context"
	"fmt"
	"sync"

	"devsrctool/internal/cdp"
	"devsrctool/internal/config"
	"devsrctool/internal/event"
	"devsrctool/internal/logger"
	"devsrctool/internal/resolver"
	"devsrctool/internal/session"
	"devsrctool/internal/sink"
	"devsrctool/internal/storage"
	"devsrctool/pkg/domain"
)

// Service 源归因服务
type Service struct {
	cfg      *config.Config
	log      logger.Logger
	sessions *session.Manager
	notifier *event.Notifier
	catalog  *storage.Catalog // Dsn 为空时为 nil，禁用持久化

	mu          sync.RWMutex
	resolvers   map[domain.SessionID]*resolver.Resolver
	attachments map[domain.SessionID]*cdp.Manager
}

// New 创建服务；按配置打开源记录目录
func New(cfg *config.Config, l logger.Logger) (*Service, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if l == nil {
		l = logger.NewNop()
	}

	var catalog *storage.Catalog
	if cfg.Sqlite.Dsn != "" {
		var err error
		catalog, err = storage.Open(cfg.Sqlite.Dsn, cfg.Sqlite.Prefix, l)
		if err != nil {
			return nil, err
		}
	}

	return &Service{
		cfg:         cfg,
		log:         l,
		sessions:    session.NewManager(l),
		notifier:    event.NewNotifier(l),
		catalog:     catalog,
		resolvers:   make(map[domain.SessionID]*resolver.Resolver),
		attachments: make(map[domain.SessionID]*cdp.Manager),
	}, nil
}

// StartSession 启动调试会话。裁决器随会话构造一次，通知热路径上不再分配
func (s *Service) StartSession() (domain.SessionID, error) {
	sess := s.sessions.Create(s.cfg.Sink.Capacity)

	snk := &recordingSink{next: sess.Sink(), catalog: s.catalog, log: s.log}
	s.mu.Lock()
	s.resolvers[sess.ID] = resolver.New(snk, s.log)
	s.mu.Unlock()
	return sess.ID, nil
}

// StopSession 停止调试会话并断开其摄取端
func (s *Service) StopSession(id domain.SessionID) error {
	s.mu.Lock()
	delete(s.resolvers, id)
	s.mu.Unlock()

	if err := s.detach(id); err != nil {
		s.log.Warn("断开摄取端失败", "sessionID", string(id), "error", err.Error())
	}
	return s.sessions.Delete(id)
}

// SubscribeControl 订阅会话的控制消息流；会话停止后通道被关闭
func (s *Service) SubscribeControl(id domain.SessionID) (<-chan domain.ControlMsg, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("subscribe control for %q: %w", string(id), session.ErrNotFound)
	}
	return sess.Control(), nil
}

// NotifyNewSource 处理一条引擎新脚本源通知。
// 会话不存在时等同于未配置 sink：直接丢弃（常态路径），不返回错误、不分配
func (s *Service) NotifyNewSource(id domain.SessionID, n domain.SourceNotification) error {
	s.mu.RLock()
	r, ok := s.resolvers[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return r.HandleNewSource(n)
}

// NotifyDebuggeeAdded 同步派发 debuggee added 本地事件
func (s *Service) NotifyDebuggeeAdded(pipeline domain.PipelineID, workerID *domain.WorkerID) {
	s.notifier.NotifyDebuggeeAdded(pipeline, workerID)
}

// RegisterDebuggeeListener 注册 debuggee added 监听器，返回注销函数
func (s *Service) RegisterDebuggeeListener(l event.Listener) func() {
	return s.notifier.Register(l)
}

// AttachTarget 为会话附加一个 Chromium 目标并开始摄取其脚本事件
func (s *Service) AttachTarget(ctx context.Context, id domain.SessionID, target string) error {
	if _, ok := s.sessions.Get(id); !ok {
		return fmt.Errorf("attach target for %q: %w", string(id), session.ErrNotFound)
	}

	m := cdp.New(s.cfg.DevTools.URL, s.cfg.DevTools.Namespace, func(n domain.SourceNotification) {
		if err := s.NotifyNewSource(id, n); err != nil {
			s.log.Err(err, "处理摄取到的源通知失败", "sessionID", string(id))
		}
	}, s.log)

	if err := m.AttachTarget(ctx, target); err != nil {
		return err
	}
	if err := m.Enable(); err != nil {
		_ = m.Detach()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.attachments[id]; ok {
		_ = old.Detach()
	}
	s.attachments[id] = m
	return nil
}

// DetachTarget 断开会话的摄取端
func (s *Service) DetachTarget(id domain.SessionID) error {
	return s.detach(id)
}

// ListSources 按管线列出已持久化的源记录
func (s *Service) ListSources(pipeline domain.PipelineID) ([]storage.SourceRecord, error) {
	if s.catalog == nil {
		return nil, nil
	}
	return s.catalog.ListByPipeline(pipeline)
}

// Close 停止所有会话、断开摄取端并关闭目录
func (s *Service) Close() error {
	s.mu.Lock()
	for id, m := range s.attachments {
		_ = m.Detach()
		delete(s.attachments, id)
	}
	for id := range s.resolvers {
		delete(s.resolvers, id)
	}
	s.mu.Unlock()

	s.sessions.Clear()
	if s.catalog != nil {
		return s.catalog.Close()
	}
	return nil
}

func (s *Service) detach(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.attachments[id]
	if !ok {
		return nil
	}
	delete(s.attachments, id)
	return m.Detach()
}

// recordingSink 转发成功后把源记录写入目录的 Sink 装饰器。
// 持久化失败只记日志，不影响已完成的转发。
type recordingSink struct {
	next    sink.Sink
	catalog *storage.Catalog
	log     logger.Logger
}

func (r *recordingSink) Send(msg domain.ControlMsg) error {
	if err := r.next.Send(msg); err != nil {
		return err
	}
	if r.catalog != nil {
		if err := r.catalog.Save(msg.PipelineID, msg.Source); err != nil {
			r.log.Err(err, "源记录写入目录失败", "pipeline", msg.PipelineID.String())
		}
	}
	return nil
}
