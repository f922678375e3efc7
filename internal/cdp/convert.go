package cdp

import (
	"strconv"

	"github.com/mafredri/cdp/protocol/debugger"
	"github.com/tidwall/gjson"

	"devsrctool/pkg/domain"
)

// CDP 没有 introductionType 的直接对应，按事件特征映射到引擎词表：
//   - hasSourceURL：URL 字段是 //# sourceURL 注记的值，即覆盖 URL；
//     真实资源 URL 在 embedderName 里
//   - 隔离环境（扩展 content script）→ injectedScript
//   - 无 URL 的脚本 → eval
//   - 文档中间开始的脚本 → inlineScript
func introductionTypeFor(ev *debugger.ScriptParsedReply) string {
	if auxType(ev) == "isolated" {
		return "injectedScript"
	}
	if ev.URL == "" {
		return "eval"
	}
	if ev.StartLine > 0 || ev.StartColumn > 0 {
		return "inlineScript"
	}
	return "scriptElement"
}

// ToNotification 把 scriptParsed 事件转换为中立的源通知模型
func ToNotification(ev *debugger.ScriptParsedReply, text string, namespace uint32, workerID *domain.WorkerID) domain.SourceNotification {
	introductionType := introductionTypeFor(ev)
	n := domain.SourceNotification{
		PipelineNamespaceID: namespace,
		PipelineIndex:       uint32(ev.ExecutionContextID),
		SpidermonkeyID:      scriptID(ev),
		Text:                text,
		IntroductionType:    &introductionType,
	}

	if ev.HasSourceURL != nil && *ev.HasSourceURL {
		override := ev.URL
		n.URLOverride = &override
		if ev.EmbedderName != nil {
			n.URL = *ev.EmbedderName
		}
	} else {
		n.URL = ev.URL
	}

	if workerID != nil {
		s := workerID.String()
		n.WorkerID = &s
	}
	return n
}

// scriptID V8 的脚本 ID 是十进制字符串，转为数值关联 ID；异常形态回落为 0
func scriptID(ev *debugger.ScriptParsedReply) uint32 {
	id, err := strconv.ParseUint(string(ev.ScriptID), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(id)
}

func auxType(ev *debugger.ScriptParsedReply) string {
	if len(ev.ExecutionContextAuxData) == 0 {
		return ""
	}
	return gjson.GetBytes(ev.ExecutionContextAuxData, "type").String()
}
