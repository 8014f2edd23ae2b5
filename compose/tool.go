package compose

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/kwhite/mailagent/structured"
	"github.com/kwhite/mailagent/types"
)

const (
	generateToolName        = "write_email"
	generateToolDescription = "Write a complete email with title, subject and content from the confirmed details."

	reviseToolName        = "revise_email"
	reviseToolDescription = "Revise the email according to the user's feedback and list the changes made."

	translateToolName        = "translate_email"
	translateToolDescription = "Translate the email content into the target language, keeping title, subject and content structure."
)

// DefaultGenerateSystemPrompt mirrors the tone-and-structure instructions the
// assistant was trained around.
const DefaultGenerateSystemPrompt = `You are an expert email writer that creates professional emails based on confirmed details.

Use the confirmed details to create a well-structured, appropriate email that matches the requested tone, purpose and language. Produce a descriptive title, a compelling subject line and a complete body with proper formatting.`

const DefaultReviseSystemPrompt = `You are an expert email editor that revises emails based on user feedback.

Maintain the original intent while incorporating the requested changes, and report the specific changes you made.`

const DefaultTranslateSystemPrompt = `You act as a translator for emails.

Translate the provided content into the target language. Preserve meaning, tone and formatting, and produce a translated title and subject alongside the content.`

// ToolBasedComposer implements generation, revision and translation through
// forced tool calls against one chat model.
type ToolBasedComposer struct {
	generateChain  *structured.Chain[types.EmailDetails, types.EmailDocument]
	reviseChain    *structured.Chain[revisionInput, types.EmailDocument]
	translateChain *structured.Chain[TranslateRequest, types.EmailDocument]
}

type revisionInput struct {
	current  types.EmailDocument
	feedback string
}

func NewToolBasedComposer(chatModel model.ToolCallingChatModel) (*ToolBasedComposer, error) {
	generateChain, err := structured.NewChain[types.EmailDetails, types.EmailDocument](
		chatModel,
		func(ctx context.Context, details types.EmailDetails) ([]*schema.Message, error) {
			body, err := types.FormatDetailsPrompt(details, nil)
			if err != nil {
				return nil, err
			}
			return []*schema.Message{
				schema.SystemMessage(DefaultGenerateSystemPrompt),
				schema.UserMessage("Please generate an email with these details:\n\n" + body),
			}, nil
		},
		generateToolName,
		generateToolDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("create generation chain: %w", err)
	}

	reviseChain, err := structured.NewChain[revisionInput, types.EmailDocument](
		chatModel,
		func(ctx context.Context, in revisionInput) ([]*schema.Message, error) {
			body, err := types.FormatDocumentPrompt(in.current, in.feedback)
			if err != nil {
				return nil, err
			}
			return []*schema.Message{
				schema.SystemMessage(DefaultReviseSystemPrompt),
				schema.UserMessage(body),
			}, nil
		},
		reviseToolName,
		reviseToolDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("create revision chain: %w", err)
	}

	translateChain, err := structured.NewChain[TranslateRequest, types.EmailDocument](
		chatModel,
		func(ctx context.Context, req TranslateRequest) ([]*schema.Message, error) {
			source := req.SourceLanguage
			if source == "" {
				source = "en"
			}
			body := fmt.Sprintf("Please translate the following email content from %s into %s:\n\n%s",
				source, req.TargetLanguage, req.Content)
			return []*schema.Message{
				schema.SystemMessage(DefaultTranslateSystemPrompt),
				schema.UserMessage(body),
			}, nil
		},
		translateToolName,
		translateToolDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("create translation chain: %w", err)
	}

	return &ToolBasedComposer{
		generateChain:  generateChain,
		reviseChain:    reviseChain,
		translateChain: translateChain,
	}, nil
}

func (c *ToolBasedComposer) GenerateEmail(ctx context.Context, details types.EmailDetails) (*types.EmailDocument, error) {
	doc, err := c.generateChain.Invoke(ctx, details)
	if err != nil {
		return nil, fmt.Errorf("generate email: %w", err)
	}
	return doc, nil
}

func (c *ToolBasedComposer) Revise(ctx context.Context, current types.EmailDocument, feedback string) (*types.EmailDocument, error) {
	doc, err := c.reviseChain.Invoke(ctx, revisionInput{current: current, feedback: feedback})
	if err != nil {
		return nil, fmt.Errorf("revise email: %w", err)
	}
	return doc, nil
}

func (c *ToolBasedComposer) Translate(ctx context.Context, req TranslateRequest) (*types.EmailDocument, error) {
	doc, err := c.translateChain.Invoke(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("translate email: %w", err)
	}
	return doc, nil
}

var (
	_ Generator  = (*ToolBasedComposer)(nil)
	_ Reviser    = (*ToolBasedComposer)(nil)
	_ Translator = (*ToolBasedComposer)(nil)
)
