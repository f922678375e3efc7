package resolver

import "net/url"

// parseOriginal 尝试解析引擎上报的原始 URL；解析失败或非绝对 URL 视为缺失。
// 引擎对 eval 等场景上报的原始 URL 可能是合成值，这里不做任何修正，原样透传。
func parseOriginal(raw string) *url.URL {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}

// parseOverride 以原始 URL 为基准解析插桩提供的覆盖 URL。
// 基准缺失或为 opaque URL（about:blank 这类不能作为基准的形态，
// net/url 会对其拼出无意义的绝对 URL）时只接受绝对覆盖 URL；
// 失败仅使该候选作废，不影响整条通知。
func parseOverride(base *url.URL, raw string) *url.URL {
	if raw == "" {
		return nil
	}
	if base == nil || base.Opaque != "" {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() {
			return nil
		}
		return u
	}
	u, err := base.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}

// reconcileURL 在原始 URL 与覆盖 URL 之间裁决出权威 URL。
// 覆盖 URL 更精确（插桩方为合成代码指定的真实身份），两者都有效时覆盖方胜出。
func reconcileURL(original string, override *string) (resolved, overrideURL *url.URL) {
	origURL := parseOriginal(original)
	if override != nil {
		overrideURL = parseOverride(origURL, *override)
	}
	if overrideURL != nil {
		return overrideURL, overrideURL
	}
	return origURL, nil
}
