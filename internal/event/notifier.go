// Package event 实现同进程内的调试对象事件派发。
// 这里只是本地通知路径，不做任何归因裁决。
package event

import (
	"sort"
	"sync"

	"devsrctool/internal/logger"
	"devsrctool/pkg/domain"
)

// Status 事件派发结果
type Status int

const (
	// StatusNotCanceled 事件完整派发，未被取消
	StatusNotCanceled Status = iota
	// StatusCanceled 事件被监听器取消；debuggee added 事件按构造即不可取消，
	// 该状态在本通知器中不会出现
	StatusCanceled
)

// Listener 调试对象事件监听器，在派发线程上同步执行
type Listener func(domain.DebuggeeAddedEvent)

// Notifier 本地调试对象事件派发器
type Notifier struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	log       logger.Logger
}

// NewNotifier 创建事件派发器
func NewNotifier(l logger.Logger) *Notifier {
	if l == nil {
		l = logger.NewNop()
	}
	return &Notifier{listeners: make(map[int]Listener), log: l}
}

// Register 注册监听器，返回对应的注销函数
func (n *Notifier) Register(l Listener) (unregister func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = l
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// NotifyDebuggeeAdded 构造 debuggee added 事件并同步派发给所有监听器。
// 事件类型不可取消，派发总是以 StatusNotCanceled 完成。
func (n *Notifier) NotifyDebuggeeAdded(pipeline domain.PipelineID, workerID *domain.WorkerID) Status {
	ev := domain.DebuggeeAddedEvent{PipelineID: pipeline, WorkerID: workerID}

	n.mu.RLock()
	ids := make([]int, 0, len(n.listeners))
	for id := range n.listeners {
		ids = append(ids, id)
	}
	// 按注册顺序派发
	sort.Ints(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, n.listeners[id])
	}
	n.mu.RUnlock()

	n.log.Debug("派发 debuggee added 事件",
		"pipeline", pipeline.String(), "listeners", len(listeners))
	for _, l := range listeners {
		l(ev)
	}
	return StatusNotCanceled
}
