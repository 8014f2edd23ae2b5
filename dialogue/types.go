package dialogue

import (
	"context"

	"github.com/kwhite/mailagent/types"
)

// Plan is the assistant's next conversational move while slots are missing.
type Plan struct {
	Message   string                   `json:"message" jsonschema:"required,description=Natural conversational response to the user"`
	Questions []types.FollowUpQuestion `json:"questions,omitempty" jsonschema:"description=Targeted follow-up questions for missing fields"`
}

// Request carries the state handed to a follow-up generator.
type Request struct {
	Details       types.EmailDetails
	MissingFields []string
}

// Generator produces follow-up questions for still-missing slots.
type Generator interface {
	GenerateFollowUps(ctx context.Context, req *Request) (*Plan, error)
}
