package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SessionID 调试会话唯一标识
type SessionID string

// ErrZeroPipelineIndex 管线序号为零，说明引擎侧的通知已损坏
var ErrZeroPipelineIndex = errors.New("pipeline index must not be zero")

// PipelineID 脚本执行上下文（页面/框架）的标识，由命名空间与序号组成
type PipelineID struct {
	NamespaceID uint32 `json:"namespaceId"`
	Index       uint32 `json:"index"`
}

// NewPipelineID 由原始整数构造管线标识；序号为零时拒绝
func NewPipelineID(namespaceID, index uint32) (PipelineID, error) {
	if index == 0 {
		return PipelineID{}, ErrZeroPipelineIndex
	}
	return PipelineID{NamespaceID: namespaceID, Index: index}, nil
}

// String 返回 (namespace,index) 形式的可读表示
func (p PipelineID) String() string {
	return fmt.Sprintf("(%d,%d)", p.NamespaceID, p.Index)
}

// WorkerID worker 线程全局作用域的标识；页面主作用域没有 WorkerID
type WorkerID uuid.UUID

// ParseWorkerID 解析引擎上报的 worker 标识字符串
func ParseWorkerID(s string) (WorkerID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return WorkerID{}, fmt.Errorf("malformed worker id %q: %w", s, err)
	}
	return WorkerID(id), nil
}

// String 返回标准 UUID 文本形式
func (w WorkerID) String() string {
	return uuid.UUID(w).String()
}
