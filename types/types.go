package types

// Phase is the conversation phase of an email drafting session.
type Phase string

const (
	PhaseGathering  Phase = "gathering"
	PhaseConfirming Phase = "confirming"
	PhaseGenerating Phase = "generating"
	PhaseRevised    Phase = "revised"
)

// EmailDetails holds the slots collected for one email. A nil pointer means
// the slot has not been determined yet; an empty string never survives a
// merge, so pointer-nil is the only absence marker.
type EmailDetails struct {
	Recipient      *string        `json:"recipient,omitempty"`
	Purpose        *string        `json:"purpose,omitempty"`
	Tone           *string        `json:"tone,omitempty"`
	Language       *string        `json:"language,omitempty"`
	Context        *string        `json:"context,omitempty"`
	AdditionalInfo map[string]any `json:"additional_info,omitempty"`
}

// EmailDocument is a generated or revised email. Replaced wholesale by
// generation and revision, never partially merged.
type EmailDocument struct {
	Title       string   `json:"title"`
	Subject     string   `json:"subject"`
	Content     string   `json:"content"`
	ChangesMade []string `json:"changes_made,omitempty"`
}

// FollowUpQuestion asks the user for one still-missing slot.
type FollowUpQuestion struct {
	Question string   `json:"question"`
	Field    string   `json:"field"`
	Options  []string `json:"options,omitempty"`
}

// Author identifies who produced a conversation turn.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Turn is one immutable ledger entry. Seq is monotonic per conversation in
// creation order.
type Turn struct {
	ConversationID string `json:"conversation_id"`
	Author         Author `json:"author"`
	Content        string `json:"content"`
	Seq            int    `json:"seq"`
}

// Value dereferences an optional slot, returning "" when absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr wraps a non-empty string as an optional slot value. Empty input maps
// to absent.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
