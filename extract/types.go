package extract

import (
	"context"
)

// Result is what one extraction pass determined from a single user message.
// A nil field means "not determined this turn", never "explicitly cleared".
type Result struct {
	Recipient       *string        `json:"recipient,omitempty" jsonschema:"description=Person or organization the email is addressed to"`
	Purpose         *string        `json:"purpose,omitempty" jsonschema:"description=Reason for the email such as meeting_request or follow_up"`
	Tone            *string        `json:"tone,omitempty" jsonschema:"description=Desired tone such as professional friendly formal or casual"`
	Language        *string        `json:"language,omitempty" jsonschema:"description=Preferred language code such as en es fr"`
	Context         *string        `json:"context,omitempty" jsonschema:"description=Specific context or details mentioned by the user"`
	AdditionalInfo  map[string]any `json:"additional_info,omitempty" jsonschema:"description=Other relevant key value details"`
	ConfidenceScore *float64       `json:"confidence_score,omitempty" jsonschema:"description=Extraction confidence between 0 and 1"`
}

// Extractor pulls email slots out of free-form user text. Implementations
// must degrade to an empty Result on unusable model output instead of
// failing; a returned error means the collaborator itself was unreachable.
type Extractor interface {
	Extract(ctx context.Context, userText string) (*Result, error)
}
