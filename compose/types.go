package compose

import (
	"context"

	"github.com/kwhite/mailagent/types"
)

// Generator writes a complete email from confirmed details.
type Generator interface {
	GenerateEmail(ctx context.Context, details types.EmailDetails) (*types.EmailDocument, error)
}

// Reviser rewrites an existing email according to user feedback. The result
// replaces the previous document wholesale.
type Reviser interface {
	Revise(ctx context.Context, current types.EmailDocument, feedback string) (*types.EmailDocument, error)
}

// TranslateRequest is the one-shot translation input used by the template
// path; it is independent of any conversation.
type TranslateRequest struct {
	Content        string
	TargetLanguage string
	SourceLanguage string
}

// Translator renders email content in another language.
type Translator interface {
	Translate(ctx context.Context, req TranslateRequest) (*types.EmailDocument, error)
}
