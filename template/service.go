package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/kwhite/mailagent/compose"
	"github.com/kwhite/mailagent/types"
)

// GenerateRequest is the dialogue-free one-shot generation input.
type GenerateRequest struct {
	Purpose  string `json:"purpose"`
	Context  string `json:"context,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Language string `json:"language,omitempty"`
}

// TranslateRequest translates finished email content.
type TranslateRequest struct {
	Content        string `json:"content"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language,omitempty"`
}

// Service covers the template-path operations that need a collaborator:
// one-shot generation and translation. Neither touches conversation state.
type Service struct {
	generator  compose.Generator
	translator compose.Translator
}

func NewService(generator compose.Generator, translator compose.Translator) (*Service, error) {
	if generator == nil {
		return nil, errors.New("template: generator must not be nil")
	}
	if translator == nil {
		return nil, errors.New("template: translator must not be nil")
	}
	return &Service{generator: generator, translator: translator}, nil
}

func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*types.EmailDocument, error) {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	language := req.Language
	if language == "" {
		language = "en"
	}
	doc, err := s.generator.GenerateEmail(ctx, types.EmailDetails{
		Purpose:  types.Ptr(req.Purpose),
		Context:  types.Ptr(req.Context),
		Tone:     types.Ptr(tone),
		Language: types.Ptr(language),
	})
	if err != nil {
		return nil, fmt.Errorf("template: generate: %w", err)
	}
	return doc, nil
}

func (s *Service) Translate(ctx context.Context, req TranslateRequest) (*types.EmailDocument, error) {
	source := req.SourceLanguage
	if source == "" {
		source = "en"
	}
	doc, err := s.translator.Translate(ctx, compose.TranslateRequest{
		Content:        req.Content,
		TargetLanguage: req.TargetLanguage,
		SourceLanguage: source,
	})
	if err != nil {
		return nil, fmt.Errorf("template: translate: %w", err)
	}
	return doc, nil
}
