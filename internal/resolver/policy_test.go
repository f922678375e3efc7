package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntroduction(t *testing.T) {
	ephemerals := []string{
		"injectedScript", "eval", "debugger eval", "Function",
		"javascriptURL", "eventHandler", "domTimer",
	}

	// 瞬态类型：无覆盖 URL 时一律抑制，有覆盖 URL 时入册
	for _, tag := range ephemerals {
		t.Run(tag, func(t *testing.T) {
			d := classifyIntroduction(strPtr(tag), false)
			assert.False(t, d.eligible)
			assert.Equal(t, "ephemeral source with no attributable url", d.reason)

			d = classifyIntroduction(strPtr(tag), true)
			assert.True(t, d.eligible)
			assert.False(t, d.inline)
		})
	}

	t.Run("missing tag", func(t *testing.T) {
		d := classifyIntroduction(nil, true)
		assert.False(t, d.eligible)
		assert.Equal(t, "no introductionType reported", d.reason)
	})

	t.Run("inlineScript without override is inline", func(t *testing.T) {
		d := classifyIntroduction(strPtr("inlineScript"), false)
		assert.True(t, d.eligible)
		assert.True(t, d.inline)
	})

	t.Run("inlineScript with override is not inline", func(t *testing.T) {
		d := classifyIntroduction(strPtr("inlineScript"), true)
		assert.True(t, d.eligible)
		assert.False(t, d.inline)
	})

	t.Run("unknown tag defaults to eligible non-inline", func(t *testing.T) {
		d := classifyIntroduction(strPtr("scriptElement"), false)
		assert.True(t, d.eligible)
		assert.False(t, d.inline)
	})
}
