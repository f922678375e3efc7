package domain

// ControlMsgType 发往 devtools 子系统的控制消息类别
type ControlMsgType string

const (
	// ControlMsgCreateSourceActor 为一段脚本源创建 source actor
	ControlMsgCreateSourceActor ControlMsgType = "createSourceActor"
)

// ControlMsg 发往外部调试子系统的带标签载荷。
// 管线标识随消息携带，不嵌入源记录本身。
type ControlMsg struct {
	Type       ControlMsgType
	PipelineID PipelineID
	Source     SourceInfo
}

// NewCreateSourceActor 构造 CreateSourceActor 控制消息
func NewCreateSourceActor(pipeline PipelineID, source SourceInfo) ControlMsg {
	return ControlMsg{Type: ControlMsgCreateSourceActor, PipelineID: pipeline, Source: source}
}

// DebuggeeAddedEvent 新调试对象加入会话时派发给同进程监听器的本地事件
type DebuggeeAddedEvent struct {
	PipelineID PipelineID
	WorkerID   *WorkerID
}
