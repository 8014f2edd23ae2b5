package assistant

import "github.com/kwhite/mailagent/types"

// ResponseType labels what kind of turn the assistant produced.
type ResponseType string

const (
	ResponseFollowUp     ResponseType = "follow_up"
	ResponseConfirmation ResponseType = "confirmation"
	ResponseGeneration   ResponseType = "generation"
	ResponseRevision     ResponseType = "revision"
)

// Response is the assistant's answer to one operation.
type Response struct {
	ConversationID       string                   `json:"conversation_id"`
	Type                 ResponseType             `json:"response_type"`
	Message              string                   `json:"message"`
	Details              *types.EmailDetails      `json:"extracted_details,omitempty"`
	FollowUpQuestions    []types.FollowUpQuestion `json:"follow_up_questions,omitempty"`
	MissingFields        []string                 `json:"missing_fields,omitempty"`
	GeneratedEmail       *types.EmailDocument     `json:"generated_email,omitempty"`
	RequiresConfirmation bool                     `json:"requires_confirmation"`
}
