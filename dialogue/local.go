package dialogue

import (
	"context"
	"fmt"

	"github.com/kwhite/mailagent/types"
)

// fieldQuestions are the canned questions used when no model is reachable.
var fieldQuestions = map[string]string{
	"recipient": "Who would you like to send this email to?",
	"purpose":   "What is the purpose of this email?",
	"context":   "What specific details or context should the email cover?",
}

var fieldOptions = map[string][]string{
	"recipient": {"colleague", "client", "manager", "vendor"},
	"purpose":   {"meeting_request", "business_inquiry", "follow_up"},
}

// LocalGenerator produces deterministic follow-up questions without any
// model call. Used as a fallback and in tests.
type LocalGenerator struct{}

func (g *LocalGenerator) GenerateFollowUps(ctx context.Context, req *Request) (*Plan, error) {
	questions := make([]types.FollowUpQuestion, 0, len(req.MissingFields))
	for _, field := range req.MissingFields {
		question, ok := fieldQuestions[field]
		if !ok {
			question = fmt.Sprintf("Could you tell me the %s for this email?", field)
		}
		questions = append(questions, types.FollowUpQuestion{
			Question: question,
			Field:    field,
			Options:  fieldOptions[field],
		})
	}
	return &Plan{
		Message:   "I need a few more details to help you create the perfect email.",
		Questions: questions,
	}, nil
}

// FailbackGenerator tries each generator in order and returns the first
// success.
type FailbackGenerator struct {
	generators []Generator
}

func NewFailbackGenerator(generators ...Generator) *FailbackGenerator {
	return &FailbackGenerator{generators: generators}
}

func (g *FailbackGenerator) GenerateFollowUps(ctx context.Context, req *Request) (*Plan, error) {
	var lastErr error
	for _, generator := range g.generators {
		plan, err := generator.GenerateFollowUps(ctx, req)
		if err == nil {
			return plan, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("all follow-up generators failed: %w", lastErr)
}

var (
	_ Generator = (*LocalGenerator)(nil)
	_ Generator = (*FailbackGenerator)(nil)
)
