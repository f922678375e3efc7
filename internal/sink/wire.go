package sink

import (
	"fmt"

	"github.com/tidwall/sjson"

	"devsrctool/pkg/domain"
)

// Encode 把控制消息编码为线缆 JSON。
// 可选字段（workerId/content/contentType）缺失时不出现在载荷中。
func Encode(msg domain.ControlMsg) ([]byte, error) {
	out := []byte(`{}`)
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, value)
	}

	set("type", string(msg.Type))
	set("pipelineId.namespaceId", msg.PipelineID.NamespaceID)
	set("pipelineId.index", msg.PipelineID.Index)
	set("sourceInfo.url", msg.Source.URL.String())
	set("sourceInfo.introductionType", msg.Source.IntroductionType)
	set("sourceInfo.isInlineSource", msg.Source.Inline)
	set("sourceInfo.spidermonkeyId", msg.Source.SpidermonkeyID)
	if msg.Source.WorkerID != nil {
		set("sourceInfo.workerId", msg.Source.WorkerID.String())
	}
	if msg.Source.Content != nil {
		set("sourceInfo.content", *msg.Source.Content)
	}
	if msg.Source.ContentType != nil {
		set("sourceInfo.contentType", *msg.Source.ContentType)
	}

	if err != nil {
		return nil, fmt.Errorf("encode control msg: %w", err)
	}
	return out, nil
}
