package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwhite/mailagent/extract"
	"github.com/kwhite/mailagent/types"
)

func TestMergePreservesKnownSlotsOnNullExtraction(t *testing.T) {
	existing := types.EmailDetails{
		Recipient: types.Ptr("Sarah (manager)"),
		Purpose:   types.Ptr("budget discussion"),
		Tone:      types.Ptr("formal"),
		Language:  types.Ptr("en"),
		Context:   types.Ptr("Q3 budget"),
	}

	merged := Merge(existing, &extract.Result{})

	assert.Equal(t, existing, merged)
}

func TestMergeEmptyStringNeverClearsSlot(t *testing.T) {
	existing := types.EmailDetails{Recipient: types.Ptr("Sarah")}
	merged := Merge(existing, &extract.Result{
		Recipient: types.Ptr(""),
		Purpose:   types.Ptr("  "),
	})
	assert.Equal(t, "Sarah", types.Value(merged.Recipient))
	assert.Nil(t, merged.Purpose)
}

func TestMergeNonEmptyValueOverwrites(t *testing.T) {
	existing := types.EmailDetails{Tone: types.Ptr("professional")}
	merged := Merge(existing, &extract.Result{Tone: types.Ptr("casual")})
	assert.Equal(t, "casual", types.Value(merged.Tone))
}

func TestMergeAdditionalInfoReplacesWholesale(t *testing.T) {
	existing := types.EmailDetails{
		AdditionalInfo: map[string]any{"deadline": "friday", "cc": "bob"},
	}

	t.Run("non-empty incoming replaces the whole map", func(t *testing.T) {
		merged := Merge(existing, &extract.Result{
			AdditionalInfo: map[string]any{"deadline": "monday"},
		})
		assert.Equal(t, map[string]any{"deadline": "monday"}, merged.AdditionalInfo)
	})

	t.Run("empty incoming keeps the old map", func(t *testing.T) {
		merged := Merge(existing, &extract.Result{})
		assert.Equal(t, existing.AdditionalInfo, merged.AdditionalInfo)
	})
}

func TestMergeIsPure(t *testing.T) {
	existing := types.EmailDetails{Recipient: types.Ptr("Sarah")}
	_ = Merge(existing, &extract.Result{Recipient: types.Ptr("Bob")})
	assert.Equal(t, "Sarah", types.Value(existing.Recipient))
}

func TestWithDefaultsAppliesOnlyWhenAbsent(t *testing.T) {
	details := withDefaults(types.EmailDetails{Tone: types.Ptr("casual")})
	assert.Equal(t, "casual", types.Value(details.Tone))
	assert.Equal(t, DefaultLanguage, types.Value(details.Language))
}

func TestMissingFieldsFixedOrder(t *testing.T) {
	assert.Equal(t, []string{"recipient", "purpose", "context"}, MissingFields(types.EmailDetails{}))

	partial := types.EmailDetails{Purpose: types.Ptr("intro")}
	assert.Equal(t, []string{"recipient", "context"}, MissingFields(partial))
}

func TestMissingFieldsIgnoresOptionalSlots(t *testing.T) {
	details := types.EmailDetails{
		Recipient: types.Ptr("Sarah"),
		Purpose:   types.Ptr("intro"),
		Context:   types.Ptr("weekly sync"),
	}
	assert.Empty(t, MissingFields(details))
	assert.True(t, ReadyForGeneration(details))
}

func TestCompletenessMonotonicUnderFillMerges(t *testing.T) {
	details := types.EmailDetails{
		Recipient: types.Ptr("Sarah"),
		Purpose:   types.Ptr("intro"),
		Context:   types.Ptr("weekly sync"),
	}
	require.Empty(t, MissingFields(details))

	// Later extractions that only fill nulls can never reopen completeness.
	details = Merge(details, &extract.Result{Tone: types.Ptr("formal")})
	assert.Empty(t, MissingFields(details))
	details = Merge(details, &extract.Result{})
	assert.Empty(t, MissingFields(details))
}

func TestSummaryEnumeratesAllSlots(t *testing.T) {
	details := types.EmailDetails{
		Recipient: types.Ptr("Sarah (manager)"),
		Purpose:   types.Ptr("budget discussion"),
		Tone:      types.Ptr("formal"),
		Language:  types.Ptr("en"),
		Context:   types.Ptr("Q3 budget"),
	}
	summary := Summary(details)
	assert.Contains(t, summary, "**Recipient**: Sarah (manager)")
	assert.Contains(t, summary, "**Purpose**: budget discussion")
	assert.Contains(t, summary, "**Tone**: formal")
	assert.Contains(t, summary, "**Language**: en")
	assert.Contains(t, summary, "**Context**: Q3 budget")

	// Deterministic: same input, same message.
	assert.Equal(t, summary, Summary(details))
}
