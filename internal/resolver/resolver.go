// Package resolver 实现脚本源归因裁决：把引擎上报的新脚本源通知
// 规范化为单一权威的源记录，转发给调试子系统，或带原因地抑制。
package resolver

import (
	"fmt"

	"devsrctool/internal/logger"
	"devsrctool/internal/sink"
	"devsrctool/pkg/domain"
)

// Resolver 脚本源归因裁决器。无内部并发也无跨调用共享状态，
// 每条通知独立处理；唯一的外部副作用是最终的一次 sink 发送。
type Resolver struct {
	sink sink.Sink // nil 表示当前没有附加调试会话
	log  logger.Logger
}

// New 创建裁决器；snk 为 nil 时所有通知直接丢弃（未附加调试会话的常态路径）
func New(snk sink.Sink, l logger.Logger) *Resolver {
	if l == nil {
		l = logger.NewNop()
	}
	return &Resolver{sink: snk, log: l}
}

// HandleNewSource 处理一次引擎新脚本源通知。
// 预期内的抑制（缺 introductionType、瞬态脚本无覆盖 URL、无有效 URL）
// 记 debug 日志后返回 nil；契约被破坏（管线序号为零、worker id 非法、
// sink 断开）返回错误，由宿主决定终止还是降级。
func (r *Resolver) HandleNewSource(n domain.SourceNotification) error {
	if r.sink == nil {
		return nil
	}

	pipeline, err := domain.NewPipelineID(n.PipelineNamespaceID, n.PipelineIndex)
	if err != nil {
		return fmt.Errorf("malformed source notification: %w", err)
	}

	if n.IntroductionType == nil {
		r.log.Debug("不创建调试对象：通知未携带 introductionType",
			"pipeline", pipeline.String(), "url", n.URL)
		return nil
	}

	resolved, overrideURL := reconcileURL(n.URL, n.URLOverride)

	d := classifyIntroduction(n.IntroductionType, overrideURL != nil)
	if !d.eligible {
		r.log.Debug("不创建调试对象："+d.reason,
			"pipeline", pipeline.String(),
			"introductionType", *n.IntroductionType,
			"url", n.URL)
		return nil
	}

	if resolved == nil {
		r.log.Debug("不创建调试对象：无有效 URL",
			"pipeline", pipeline.String(),
			"introductionType", *n.IntroductionType,
			"url", n.URL)
		return nil
	}

	var workerID *domain.WorkerID
	if n.WorkerID != nil {
		id, err := domain.ParseWorkerID(*n.WorkerID)
		if err != nil {
			return fmt.Errorf("malformed source notification: %w", err)
		}
		workerID = &id
	}

	var content *string
	if !d.inline {
		text := n.Text
		content = &text
	}

	info := domain.SourceInfo{
		URL:              resolved,
		IntroductionType: *n.IntroductionType,
		Inline:           d.inline,
		WorkerID:         workerID,
		Content:          content,
		ContentType:      nil, // 上游从未填充，不做推断
		SpidermonkeyID:   n.SpidermonkeyID,
	}

	if err := r.sink.Send(domain.NewCreateSourceActor(pipeline, info)); err != nil {
		return fmt.Errorf("send createSourceActor to devtools sink: %w", err)
	}
	r.log.Debug("已转发源记录",
		"pipeline", pipeline.String(),
		"url", resolved.String(),
		"introductionType", *n.IntroductionType,
		"inline", d.inline,
		"spidermonkeyId", n.SpidermonkeyID)
	return nil
}
