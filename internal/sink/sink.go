// Package sink 实现发往外部调试子系统的控制消息通道。
// 通道契约：有序、可靠、异步、单向；并发写入的线程安全由本包负责。
package sink

import (
	"errors"
	"sync"

	"devsrctool/pkg/domain"
)

// ErrClosed sink 已断开；配置了 sink 的前提下出现断开属于上游契约被破坏
var ErrClosed = errors.New("sink closed")

// Sink 外部调试子系统的单向异步发送原语
type Sink interface {
	Send(msg domain.ControlMsg) error
}

// Channel 进程内的 Sink 实现，底层为带缓冲通道
type Channel struct {
	mu     sync.RWMutex
	ch     chan domain.ControlMsg
	done   chan struct{}
	once   sync.Once
	closed bool
}

// NewChannel 创建指定容量的通道 sink
func NewChannel(capacity int) *Channel {
	if capacity <= 0 {
		capacity = 1
	}
	return &Channel{
		ch:   make(chan domain.ControlMsg, capacity),
		done: make(chan struct{}),
	}
}

// Send 投递一条控制消息；sink 已关闭时返回 ErrClosed。
// 缓冲满时阻塞直到接收方消费，保证不丢消息且保持顺序；
// 阻塞期间 sink 被关闭则放弃投递返回 ErrClosed，不会卡住 Close。
func (c *Channel) Send(msg domain.ControlMsg) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.ch <- msg:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// Recv 返回接收端通道；sink 关闭后通道被 close
func (c *Channel) Recv() <-chan domain.ControlMsg {
	return c.ch
}

// Close 关闭 sink，之后的 Send 返回 ErrClosed。
// 先关 done 唤醒所有阻塞中的 Send，等它们退场后再 close 数据通道，
// 保证不会向已关闭的通道发送。
func (c *Channel) Close() {
	c.once.Do(func() {
		close(c.done)
		c.mu.Lock()
		c.closed = true
		close(c.ch)
		c.mu.Unlock()
	})
}
