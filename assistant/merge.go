package assistant

import (
	"fmt"
	"strings"

	"github.com/kwhite/mailagent/extract"
	"github.com/kwhite/mailagent/types"
)

const (
	DefaultTone     = "professional"
	DefaultLanguage = "en"
)

// requiredFields is evaluated in this fixed order.
var requiredFields = []string{"recipient", "purpose", "context"}

// Merge applies one extraction pass onto existing details. A slot is
// overwritten only when the incoming value is non-empty; empty or absent
// incoming values never clear a known slot. AdditionalInfo is replaced
// wholesale when the incoming map is non-empty: each turn's extraction is
// treated as a coherent snapshot, not a key-level patch.
func Merge(existing types.EmailDetails, incoming *extract.Result) types.EmailDetails {
	return mergeDetails(existing, seedDetails(incoming))
}

func mergeDetails(existing, incoming types.EmailDetails) types.EmailDetails {
	out := existing
	out.Recipient = fillSlot(existing.Recipient, incoming.Recipient)
	out.Purpose = fillSlot(existing.Purpose, incoming.Purpose)
	out.Tone = fillSlot(existing.Tone, incoming.Tone)
	out.Language = fillSlot(existing.Language, incoming.Language)
	out.Context = fillSlot(existing.Context, incoming.Context)
	if len(incoming.AdditionalInfo) > 0 {
		out.AdditionalInfo = incoming.AdditionalInfo
	}
	return out
}

func fillSlot(existing, incoming *string) *string {
	if incoming != nil && strings.TrimSpace(*incoming) != "" {
		return incoming
	}
	return existing
}

// withDefaults applies the creation-time defaults. Defaults never apply on
// later merges.
func withDefaults(details types.EmailDetails) types.EmailDetails {
	if types.Value(details.Tone) == "" {
		details.Tone = types.Ptr(DefaultTone)
	}
	if types.Value(details.Language) == "" {
		details.Language = types.Ptr(DefaultLanguage)
	}
	return details
}

// MissingFields returns the required slots still unset, in required order.
func MissingFields(details types.EmailDetails) []string {
	var missing []string
	for _, field := range requiredFields {
		if types.Value(slotByName(details, field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// ReadyForGeneration reports whether every required slot is filled.
func ReadyForGeneration(details types.EmailDetails) bool {
	return len(MissingFields(details)) == 0
}

func slotByName(details types.EmailDetails, field string) *string {
	switch field {
	case "recipient":
		return details.Recipient
	case "purpose":
		return details.Purpose
	case "tone":
		return details.Tone
	case "language":
		return details.Language
	case "context":
		return details.Context
	default:
		return nil
	}
}

// Summary builds the deterministic confirmation message shown once all
// required slots are filled. Built locally, never via a collaborator.
func Summary(details types.EmailDetails) string {
	var sb strings.Builder
	sb.WriteString("Great! I have all the information needed. Here's what I understand:\n\n")
	fmt.Fprintf(&sb, "• **Recipient**: %s\n", types.Value(details.Recipient))
	fmt.Fprintf(&sb, "• **Purpose**: %s\n", types.Value(details.Purpose))
	fmt.Fprintf(&sb, "• **Tone**: %s\n", types.Value(details.Tone))
	fmt.Fprintf(&sb, "• **Language**: %s\n", types.Value(details.Language))
	fmt.Fprintf(&sb, "• **Context**: %s\n", types.Value(details.Context))
	sb.WriteString("\nWould you like me to generate the email with these details?")
	return sb.String()
}

// applyConfirmed overwrites the collected slots with caller-confirmed values
// unconditionally: a confirmation is authoritative and may set a slot to a
// value no extraction ever produced. Tone and language fall back to their
// defaults when the confirmation leaves them unset.
func applyConfirmed(state *ConversationState, confirmed types.EmailDetails) {
	state.Details.Recipient = confirmed.Recipient
	state.Details.Purpose = confirmed.Purpose
	state.Details.Context = confirmed.Context
	state.Details.Tone = confirmed.Tone
	state.Details.Language = confirmed.Language
	state.Details.AdditionalInfo = confirmed.AdditionalInfo
	state.Details = withDefaults(state.Details)
	state.IsConfirmed = true
}
