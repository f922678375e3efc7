// Package cdp 从 Chromium 调试端点摄取脚本事件：附加目标、订阅
// Debugger.scriptParsed 流，并把事件转换为中立的源通知交给上层裁决。
package cdp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mafredri/cdp"
	"github.com/mafredri/cdp/devtool"
	"github.com/mafredri/cdp/protocol/debugger"
	"github.com/mafredri/cdp/rpcc"

	"devsrctool/internal/logger"
	"devsrctool/pkg/domain"
)

// NotifyFunc 上层提供的通知回调，摄取到的每条源通知都经由它送入裁决
type NotifyFunc func(domain.SourceNotification)

// Manager 管理与单个调试目标的连接和事件消费
type Manager struct {
	devtoolsURL string
	namespace   uint32
	notify      NotifyFunc
	log         logger.Logger

	conn     *rpcc.Conn
	client   *cdp.Client
	ctx      context.Context
	cancel   context.CancelFunc
	workerID *domain.WorkerID // 附加到 worker 目标时设置
}

// New 创建摄取管理器；namespace 作为该目标所有管线的命名空间
func New(devtoolsURL string, namespace uint32, notify NotifyFunc, l logger.Logger) *Manager {
	if l == nil {
		l = logger.NewNop()
	}
	return &Manager{devtoolsURL: devtoolsURL, namespace: namespace, notify: notify, log: l}
}

// AttachTarget 附加调试目标；target 为空时选择第一个可附加目标
func (m *Manager) AttachTarget(ctx context.Context, target string) error {
	ctx, cancel := context.WithCancel(ctx)
	m.ctx = ctx
	m.cancel = cancel

	dt := devtool.New(m.devtoolsURL)
	targets, err := dt.List(ctx)
	if err != nil {
		return fmt.Errorf("list devtools targets: %w", err)
	}
	var sel *devtool.Target
	for i := range targets {
		if target == "" || string(targets[i].ID) == target {
			sel = targets[i]
			break
		}
	}
	if sel == nil {
		return fmt.Errorf("no matching devtools target %q", target)
	}

	conn, err := rpcc.DialContext(ctx, sel.WebSocketDebuggerURL)
	if err != nil {
		return fmt.Errorf("dial devtools target: %w", err)
	}
	m.conn = conn
	m.client = cdp.NewClient(conn)
	m.workerID = workerIDForTarget(sel)
	m.log.Info("已附加调试目标", "target", sel.ID, "type", string(sel.Type), "url", sel.URL)
	return nil
}

// Detach 断开与目标的连接并停止消费
func (m *Manager) Detach() error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}

// Enable 启用 Debugger 域并开始消费 scriptParsed 事件流
func (m *Manager) Enable() error {
	if m.client == nil {
		return fmt.Errorf("not attached")
	}
	// 事件客户端先于 Enable 创建，避免漏掉启用瞬间上报的既有脚本
	sp, err := m.client.Debugger.ScriptParsed(m.ctx)
	if err != nil {
		return fmt.Errorf("subscribe scriptParsed: %w", err)
	}
	if _, err := m.client.Debugger.Enable(m.ctx, nil); err != nil {
		sp.Close()
		return fmt.Errorf("enable debugger domain: %w", err)
	}
	go m.consume(sp)
	return nil
}

// consume 持续接收 scriptParsed 事件并逐条转换上报
func (m *Manager) consume(sp debugger.ScriptParsedClient) {
	defer sp.Close()
	m.log.Info("开始消费 scriptParsed 事件流")
	for {
		ev, err := sp.Recv()
		if err != nil {
			if m.ctx.Err() == nil {
				m.log.Err(err, "接收 scriptParsed 事件失败")
			}
			return
		}
		m.handle(ev)
	}
}

// handle 为单个事件取回源文本并转换为源通知
func (m *Manager) handle(ev *debugger.ScriptParsedReply) {
	text := m.fetchSource(ev)
	n := ToNotification(ev, text, m.namespace, m.workerID)
	m.log.Debug("摄取脚本源",
		"scriptId", string(ev.ScriptID),
		"url", ev.URL,
		"executionContext", int(ev.ExecutionContextID))
	m.notify(n)
}

// fetchSource 取回脚本文本；失败时返回空文本，由裁决层按常规处理
func (m *Manager) fetchSource(ev *debugger.ScriptParsedReply) string {
	reply, err := m.client.Debugger.GetScriptSource(m.ctx, debugger.NewGetScriptSourceArgs(ev.ScriptID))
	if err != nil {
		m.log.Warn("取回脚本源文本失败", "scriptId", string(ev.ScriptID), "error", err.Error())
		return ""
	}
	return reply.ScriptSource
}

// workerIDForTarget worker 类目标派生稳定的 WorkerID，页面目标返回 nil。
// 目标 ID 不是 UUID，通过 SHA1 命名空间 UUID 派生以保持跨进程可复现。
func workerIDForTarget(t *devtool.Target) *domain.WorkerID {
	switch strings.ToLower(string(t.Type)) {
	case "worker", "service_worker", "shared_worker":
		id := domain.WorkerID(uuid.NewSHA1(uuid.NameSpaceURL, []byte(t.ID)))
		return &id
	default:
		return nil
	}
}
