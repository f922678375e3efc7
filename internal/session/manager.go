package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"devsrctool/internal/logger"
	"devsrctool/internal/sink"
	"devsrctool/pkg/domain"
)

// ErrNotFound 会话不存在或已停止
var ErrNotFound = errors.New("session not found")

// Session 一个调试会话：持有发往 devtools 子系统的 sink。
// 会话存在即意味着"已配置 sink"，会话销毁后通知走免费路径直接丢弃。
type Session struct {
	ID        domain.SessionID
	CreatedAt time.Time

	sink *sink.Channel
}

// Sink 返回会话的控制消息发送端
func (s *Session) Sink() sink.Sink {
	return s.sink
}

// Control 返回会话的控制消息接收端
func (s *Session) Control() <-chan domain.ControlMsg {
	return s.sink.Recv()
}

// Close 关闭会话的 sink
func (s *Session) Close() {
	s.sink.Close()
}

// Manager 全局会话管理器
type Manager struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*Session
	log      logger.Logger
}

// NewManager 创建会话管理器
func NewManager(l logger.Logger) *Manager {
	if l == nil {
		l = logger.NewNop()
	}
	return &Manager{
		sessions: make(map[domain.SessionID]*Session),
		log:      l,
	}
}

// Create 创建并注册新会话，capacity 为控制通道缓冲容量
func (m *Manager) Create(capacity int) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        domain.SessionID(uuid.NewString()),
		CreatedAt: time.Now(),
		sink:      sink.NewChannel(capacity),
	}
	m.sessions[s.ID] = s
	m.log.Info("创建调试会话", "sessionID", string(s.ID))
	return s
}

// Get 获取会话
func (m *Manager) Get(id domain.SessionID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete 关闭并销毁会话
func (m *Manager) Delete(id domain.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.Close()
	delete(m.sessions, id)
	m.log.Info("销毁调试会话", "sessionID", string(id))
	return nil
}

// List 返回所有活动会话
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	return list
}

// Clear 关闭并清空所有会话
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}
