package domain

import "net/url"

// SourceNotification 引擎编译或执行一段脚本时上报的原始通知。
// 可选字段为 nil 表示引擎没有携带该信息。
type SourceNotification struct {
	PipelineNamespaceID uint32
	PipelineIndex       uint32
	SpidermonkeyID      uint32
	URL                 string
	Text                string
	IntroductionType    *string
	URLOverride         *string
	WorkerID            *string
}

// SourceInfo 规范化后的脚本源记录，随 CreateSourceActor 一次性移交给 sink。
// 只有在裁决出有效 URL 时才会构造；Content 仅在非内联时填充，
// 内联脚本的文本可以从宿主文档取得，不再重复携带。
type SourceInfo struct {
	URL              *url.URL
	IntroductionType string
	Inline           bool
	WorkerID         *WorkerID
	Content          *string
	ContentType      *string // 上游始终未填充，保留字段
	SpidermonkeyID   uint32
}
