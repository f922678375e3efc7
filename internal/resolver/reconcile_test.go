package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestReconcileURL(t *testing.T) {
	tests := []struct {
		name         string
		original     string
		override     *string
		wantResolved string // 空串表示期望 nil
		wantOverride bool
	}{
		{
			name:         "original only",
			original:     "https://example.com/app.js",
			wantResolved: "https://example.com/app.js",
		},
		{
			name:         "override wins over original",
			original:     "about:blank",
			override:     strPtr("https://example.com/evaled.js"),
			wantResolved: "https://example.com/evaled.js",
			wantOverride: true,
		},
		{
			name:         "relative override resolved against original",
			original:     "https://example.com/dir/page.html",
			override:     strPtr("bundle.js"),
			wantResolved: "https://example.com/dir/bundle.js",
			wantOverride: true,
		},
		{
			name:         "relative override without base is discarded",
			original:     "",
			override:     strPtr("bundle.js"),
			wantResolved: "",
		},
		{
			// about:blank 是 opaque URL，承载不了相对引用；
			// 覆盖候选作废后回落到原始 URL
			name:         "relative override against opaque base is discarded",
			original:     "about:blank",
			override:     strPtr("bundle.js"),
			wantResolved: "about:blank",
		},
		{
			name:         "absolute override against opaque base still wins",
			original:     "about:blank",
			override:     strPtr("https://example.com/evaled.js"),
			wantResolved: "https://example.com/evaled.js",
			wantOverride: true,
		},
		{
			name:         "absolute override without base",
			original:     "",
			override:     strPtr("https://cdn.example.com/x.js"),
			wantResolved: "https://cdn.example.com/x.js",
			wantOverride: true,
		},
		{
			name:         "invalid override falls back to original",
			original:     "https://example.com/app.js",
			override:     strPtr("http://%zz"),
			wantResolved: "https://example.com/app.js",
		},
		{
			name:         "both missing",
			original:     "",
			wantResolved: "",
		},
		{
			name:         "relative original is not absolute",
			original:     "foo/bar.js",
			wantResolved: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, overrideURL := reconcileURL(tt.original, tt.override)
			if tt.wantResolved == "" {
				assert.Nil(t, resolved)
			} else {
				require.NotNil(t, resolved)
				assert.Equal(t, tt.wantResolved, resolved.String())
			}
			assert.Equal(t, tt.wantOverride, overrideURL != nil)
		})
	}
}
