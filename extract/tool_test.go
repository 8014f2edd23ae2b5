package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwhite/mailagent/types"
)

func TestSalvageResultKeepsWellTypedSlots(t *testing.T) {
	// A mistyped confidence_score fails the typed decode as a whole; the
	// loose pass must still recover the string slots around it.
	raw := `{"recipient": "Sarah", "purpose": "budget", "confidence_score": "high"}`

	result := salvageResult(raw)
	require.NotNil(t, result)
	assert.Equal(t, "Sarah", types.Value(result.Recipient))
	assert.Equal(t, "budget", types.Value(result.Purpose))
	assert.Nil(t, result.ConfidenceScore)
	assert.Nil(t, result.Tone)
}

func TestSalvageResultProseWrapped(t *testing.T) {
	raw := "Here is what I found: {\"recipient\": \"Sarah\", \"confidence_score\": 0.4} hope that helps"

	result := salvageResult(raw)
	require.NotNil(t, result)
	assert.Equal(t, "Sarah", types.Value(result.Recipient))
	require.NotNil(t, result.ConfidenceScore)
	assert.Equal(t, 0.4, *result.ConfidenceScore)
}

func TestSalvageResultAdditionalInfo(t *testing.T) {
	raw := `{"recipient": "Sarah", "additional_info": {"deadline": "Friday"}, "tone": 7}`

	result := salvageResult(raw)
	require.NotNil(t, result)
	assert.Equal(t, map[string]any{"deadline": "Friday"}, result.AdditionalInfo)
	assert.Nil(t, result.Tone)
}

func TestSalvageResultGarbageIsEmpty(t *testing.T) {
	result := salvageResult("no json here at all")
	require.NotNil(t, result)
	assert.Equal(t, &Result{}, result)
}

func TestSalvageResultEmptyStringsStayUnset(t *testing.T) {
	result := salvageResult(`{"recipient": "", "purpose": "budget"}`)
	require.NotNil(t, result)
	assert.Nil(t, result.Recipient)
	assert.Equal(t, "budget", types.Value(result.Purpose))
}
