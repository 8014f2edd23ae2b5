package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDirectJSON(t *testing.T) {
	m := Decode(`{"a":1}`)
	require.NotNil(t, m)
	assert.False(t, IsFallback(m))
	assert.EqualValues(t, 1, m["a"])
}

func TestDecodeProseWrappedJSON(t *testing.T) {
	m := Decode(`Sure! {"a":1} thanks`)
	require.NotNil(t, m)
	assert.False(t, IsFallback(m))
	assert.EqualValues(t, 1, m["a"])
}

func TestDecodeNestedBracesInProse(t *testing.T) {
	m := Decode("Here you go:\n```json\n{\"outer\":{\"inner\":true}}\n```")
	require.NotNil(t, m)
	assert.False(t, IsFallback(m))
	assert.Contains(t, m, "outer")
}

func TestDecodeGarbageReturnsMarkedFallback(t *testing.T) {
	raw := "I could not produce JSON, sorry."
	m := Decode(raw)
	require.NotNil(t, m)
	assert.True(t, IsFallback(m))
	assert.Equal(t, raw, m[FallbackRawKey])
}

func TestDecodeUnbalancedBracesFallsBack(t *testing.T) {
	m := Decode(`{"a": 1`)
	require.NotNil(t, m)
	assert.True(t, IsFallback(m))
}

func TestDecodeNeverPanics(t *testing.T) {
	for _, raw := range []string{"", "}", "{", "}{", "null", "[1,2]", "42"} {
		require.NotPanics(t, func() { _ = Decode(raw) }, "input %q", raw)
	}
}

func TestDecodeInto(t *testing.T) {
	type payload struct {
		A int `json:"a"`
	}

	t.Run("direct", func(t *testing.T) {
		out, ok := DecodeInto[payload](`{"a":3}`)
		require.True(t, ok)
		assert.Equal(t, 3, out.A)
	})

	t.Run("prose wrapped", func(t *testing.T) {
		out, ok := DecodeInto[payload](`Of course: {"a":3}.`)
		require.True(t, ok)
		assert.Equal(t, 3, out.A)
	})

	t.Run("garbage", func(t *testing.T) {
		out, ok := DecodeInto[payload]("no json here")
		assert.False(t, ok)
		assert.Nil(t, out)
	})
}
