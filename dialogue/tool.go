package dialogue

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/kwhite/mailagent/structured"
	"github.com/kwhite/mailagent/types"
)

const (
	followUpToolName        = "plan_follow_up_questions"
	followUpToolDescription = "Produce a conversational message plus targeted follow-up questions for the missing email fields."
)

// DefaultFollowUpSystemPrompt is the default system prompt used by
// ToolBasedGenerator.
const DefaultFollowUpSystemPrompt = `You are an intelligent email assistant that asks follow-up questions to gather missing email information.

Based on the collected details and the list of missing fields, ask only for the most important missing information. Each question targets exactly one field and may suggest a few likely options. Keep questions natural and conversational, and open with a short friendly message explaining why you are asking.`

type generatorOptions struct {
	systemPrompt string
}

type GeneratorOption func(*generatorOptions)

// WithSystemPrompt overrides the system prompt used by ToolBasedGenerator.
func WithSystemPrompt(prompt string) GeneratorOption {
	return func(o *generatorOptions) {
		o.systemPrompt = prompt
	}
}

// ToolBasedGenerator plans follow-up questions through a forced tool call.
type ToolBasedGenerator struct {
	chain *structured.Chain[*Request, Plan]
}

func NewToolBasedGenerator(chatModel model.ToolCallingChatModel, opts ...GeneratorOption) (*ToolBasedGenerator, error) {
	options := generatorOptions{systemPrompt: DefaultFollowUpSystemPrompt}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	chain, err := structured.NewChain[*Request, Plan](
		chatModel,
		func(ctx context.Context, req *Request) ([]*schema.Message, error) {
			body, err := buildFollowUpPrompt(req)
			if err != nil {
				return nil, err
			}
			return []*schema.Message{
				schema.SystemMessage(options.systemPrompt),
				schema.UserMessage(body),
			}, nil
		},
		followUpToolName,
		followUpToolDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("create follow-up chain: %w", err)
	}
	return &ToolBasedGenerator{chain: chain}, nil
}

func (g *ToolBasedGenerator) GenerateFollowUps(ctx context.Context, req *Request) (*Plan, error) {
	plan, err := g.chain.Invoke(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate follow-ups: %w", err)
	}
	return plan, nil
}

func buildFollowUpPrompt(req *Request) (string, error) {
	body, err := types.FormatDetailsPrompt(req.Details, req.MissingFields)
	if err != nil {
		return "", fmt.Errorf("format follow-up prompt: %w", err)
	}
	return body, nil
}

var _ Generator = (*ToolBasedGenerator)(nil)
