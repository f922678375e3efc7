package resolver

// 引入方式是引擎定义的开放词表，这里只识别策略需要的固定子集，
// 未知标签默认按"可入册、非内联"处理，新增引擎标签无需改代码。
const introductionInlineScript = "inlineScript"

// ephemeralTypes 瞬态引入方式：没有可寻址 URL 时这类脚本只会给调试器制造噪音
var ephemeralTypes = map[string]struct{}{
	"injectedScript": {},
	"eval":           {},
	"debugger eval":  {},
	"Function":       {},
	"javascriptURL":  {},
	"eventHandler":   {},
	"domTimer":       {},
}

// decision 引入方式策略的裁决结果
type decision struct {
	eligible bool
	inline   bool
	reason   string // 不入册时的抑制原因
}

// classifyIntroduction 根据引入方式标签与覆盖 URL 是否裁决成功，
// 判定脚本是否值得暴露给调试器以及是否按内联处理。
// 带覆盖 URL 的 inlineScript 说明插桩方给了它独立可抓取的身份，按非内联处理。
func classifyIntroduction(introductionType *string, hasOverride bool) decision {
	if introductionType == nil {
		return decision{reason: "no introductionType reported"}
	}
	tag := *introductionType
	if _, ephemeral := ephemeralTypes[tag]; ephemeral && !hasOverride {
		return decision{reason: "ephemeral source with no attributable url"}
	}
	return decision{
		eligible: true,
		inline:   tag == introductionInlineScript && !hasOverride,
	}
}
