package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/kwhite/mailagent/structured"
)

const (
	extractToolName        = "extract_email_details"
	extractToolDescription = "Extract structured email details from the user's message. Leave fields unset when the message does not determine them."
)

// DefaultExtractSystemPrompt guides the model to fill only what the message
// actually states.
const DefaultExtractSystemPrompt = `You are an intelligent email assistant that extracts email details from natural conversation.

Determine the recipient, purpose, tone, language and context mentioned in the user's message, plus any other relevant details as additional info. If a piece of information is missing or unclear, leave the field unset rather than guessing. Provide a confidence score between 0 and 1 for the extraction quality.`

type toolBasedOptions struct {
	systemPrompt string
}

type Option func(*toolBasedOptions)

// WithSystemPrompt overrides the system prompt used by ToolBasedExtractor.
func WithSystemPrompt(prompt string) Option {
	return func(o *toolBasedOptions) {
		o.systemPrompt = prompt
	}
}

// ToolBasedExtractor asks the chat model for slots through a forced tool
// call. Malformed tool arguments degrade to an empty Result so a bad model
// turn reads as "nothing extracted".
type ToolBasedExtractor struct {
	chain *structured.Chain[string, Result]
}

func NewToolBasedExtractor(chatModel model.ToolCallingChatModel, opts ...Option) (*ToolBasedExtractor, error) {
	options := toolBasedOptions{systemPrompt: DefaultExtractSystemPrompt}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	chain, err := structured.NewChain[string, Result](
		chatModel,
		func(ctx context.Context, userText string) ([]*schema.Message, error) {
			return []*schema.Message{
				schema.SystemMessage(options.systemPrompt),
				schema.UserMessage(userText),
			}, nil
		},
		extractToolName,
		extractToolDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("create extraction chain: %w", err)
	}
	return &ToolBasedExtractor{chain: chain}, nil
}

func (e *ToolBasedExtractor) Extract(ctx context.Context, userText string) (*Result, error) {
	result, err := e.chain.Invoke(ctx, userText)
	if err != nil {
		var malformed *structured.MalformedResponseError
		if errors.As(err, &malformed) {
			return salvageResult(malformed.Raw), nil
		}
		return nil, err
	}
	return result, nil
}

// salvageResult runs the loose mapping parser over output the typed decoder
// rejected. A field with the wrong JSON type fails the typed decode as a
// whole, but the remaining well-typed slots are still usable; only when no
// mapping can be recovered at all does the turn read as "nothing extracted".
func salvageResult(raw string) *Result {
	m := structured.Decode(raw)
	if structured.IsFallback(m) {
		slog.Warn("extraction response unusable, treating as empty", "raw", raw)
		return &Result{}
	}
	slog.Warn("extraction response recovered field by field", "raw", raw)

	result := &Result{}
	slots := map[string]**string{
		"recipient": &result.Recipient,
		"purpose":   &result.Purpose,
		"tone":      &result.Tone,
		"language":  &result.Language,
		"context":   &result.Context,
	}
	for key, slot := range slots {
		if v, ok := m[key].(string); ok && v != "" {
			*slot = &v
		}
	}
	if v, ok := m["additional_info"].(map[string]any); ok && len(v) > 0 {
		result.AdditionalInfo = v
	}
	if v, ok := m["confidence_score"].(float64); ok {
		result.ConfidenceScore = &v
	}
	return result
}

var _ Extractor = (*ToolBasedExtractor)(nil)
