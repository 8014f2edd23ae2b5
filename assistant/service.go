package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kwhite/mailagent/compose"
	"github.com/kwhite/mailagent/dialogue"
	"github.com/kwhite/mailagent/extract"
	"github.com/kwhite/mailagent/store"
	"github.com/kwhite/mailagent/types"
)

const (
	defaultFollowUpMessage = "I need more information to help you create the email."
	generationMessage      = "Perfect! I've generated your email. Please review it below and let me know if you'd like any changes."
	revisionMessage        = "I've revised your email based on your feedback. Please review the changes below."
)

// Service is the dialogue state machine. It owns the ask-or-proceed decision
// for each turn and delegates all natural-language work to collaborators.
type Service struct {
	extractor extract.Extractor
	followUps dialogue.Generator
	generator compose.Generator
	reviser   compose.Reviser
	states    *StateStore
	ledger    *store.Ledger
}

func NewService(
	extractor extract.Extractor,
	followUps dialogue.Generator,
	generator compose.Generator,
	reviser compose.Reviser,
	states *StateStore,
	ledger *store.Ledger,
) (*Service, error) {
	if extractor == nil {
		return nil, errors.New("assistant: extractor must not be nil")
	}
	if followUps == nil {
		return nil, errors.New("assistant: follow-up generator must not be nil")
	}
	if generator == nil {
		return nil, errors.New("assistant: email generator must not be nil")
	}
	if reviser == nil {
		return nil, errors.New("assistant: reviser must not be nil")
	}
	if states == nil {
		return nil, errors.New("assistant: state store must not be nil")
	}
	if ledger == nil {
		return nil, errors.New("assistant: ledger must not be nil")
	}
	return &Service{
		extractor: extractor,
		followUps: followUps,
		generator: generator,
		reviser:   reviser,
		states:    states,
		ledger:    ledger,
	}, nil
}

// NewConversation allocates an identifier. It performs no state work; state
// is created lazily on the first turn.
func (s *Service) NewConversation() string {
	return newUUID()
}

// ProcessMessage runs one gathering turn: extract, merge, evaluate, then
// either ask follow-up questions or present the confirmation summary.
func (s *Service) ProcessMessage(ctx context.Context, conversationID, userText string) (*Response, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return nil, newError(ErrorInvalidInput, "empty_message", conversationID, nil)
	}
	if strings.TrimSpace(conversationID) == "" {
		return nil, newError(ErrorInvalidInput, "empty_conversation_id", conversationID, nil)
	}

	result, err := s.extractor.Extract(ctx, userText)
	if err != nil {
		return nil, newError(ErrorCollaborator, "extraction_failed", conversationID, err)
	}
	slog.Debug("extracted email details", "conversation_id", conversationID, "result", result)

	state, err := s.states.CreateOrMerge(ctx, conversationID, seedDetails(result))
	if err != nil {
		return nil, newError(ErrorInternal, "state_write_failed", conversationID, err)
	}

	missing := MissingFields(state.Details)
	resp := &Response{
		ConversationID: conversationID,
		Details:        &state.Details,
	}

	if len(missing) > 0 {
		plan, err := s.followUps.GenerateFollowUps(ctx, &dialogue.Request{
			Details:       state.Details,
			MissingFields: missing,
		})
		if err != nil {
			return nil, newError(ErrorCollaborator, "follow_up_failed", conversationID, err)
		}
		state.Phase = types.PhaseGathering
		resp.Type = ResponseFollowUp
		resp.Message = plan.Message
		if resp.Message == "" {
			resp.Message = defaultFollowUpMessage
		}
		resp.FollowUpQuestions = plan.Questions
		resp.MissingFields = missing
	} else {
		state.Phase = types.PhaseConfirming
		resp.Type = ResponseConfirmation
		resp.Message = Summary(state.Details)
		resp.RequiresConfirmation = true
	}

	if err := s.states.Put(ctx, state); err != nil {
		return nil, newError(ErrorInternal, "state_write_failed", conversationID, err)
	}
	s.recordTurns(ctx, conversationID, userText, resp.Message)
	return resp, nil
}

// ConfirmAndGenerate applies the caller-confirmed details verbatim, marks the
// state confirmed and generates the email. Confirmation cannot precede
// gathering: an unknown conversation is a NotFound, with no writes.
func (s *Service) ConfirmAndGenerate(ctx context.Context, conversationID string, confirmed types.EmailDetails) (*Response, error) {
	state, err := s.states.Get(ctx, conversationID)
	if err != nil {
		return nil, newError(ErrorInternal, "state_read_failed", conversationID, err)
	}
	if state == nil {
		return nil, newError(ErrorNotFound, "conversation_unknown", conversationID, nil)
	}

	applyConfirmed(state, confirmed)

	doc, err := s.generator.GenerateEmail(ctx, state.Details)
	if err != nil {
		return nil, newError(ErrorCollaborator, "generation_failed", conversationID, err)
	}
	state.GeneratedEmail = doc
	state.Phase = types.PhaseGenerating

	if err := s.states.Put(ctx, state); err != nil {
		return nil, newError(ErrorInternal, "state_write_failed", conversationID, err)
	}
	s.recordTurns(ctx, conversationID, "Please generate the email with the confirmed details.", generationMessage)

	return &Response{
		ConversationID: conversationID,
		Type:           ResponseGeneration,
		Message:        generationMessage,
		GeneratedEmail: doc,
	}, nil
}

// Revise replaces the generated email wholesale with a revision built from
// user feedback. Revision never returns the conversation to gathering.
func (s *Service) Revise(ctx context.Context, conversationID string, current types.EmailDocument, feedback string) (*Response, error) {
	state, err := s.states.Get(ctx, conversationID)
	if err != nil {
		return nil, newError(ErrorInternal, "state_read_failed", conversationID, err)
	}
	if state == nil {
		return nil, newError(ErrorNotFound, "conversation_unknown", conversationID, nil)
	}

	doc, err := s.reviser.Revise(ctx, current, feedback)
	if err != nil {
		return nil, newError(ErrorCollaborator, "revision_failed", conversationID, err)
	}
	state.GeneratedEmail = doc
	state.Phase = types.PhaseRevised

	if err := s.states.Put(ctx, state); err != nil {
		return nil, newError(ErrorInternal, "state_write_failed", conversationID, err)
	}
	s.recordTurns(ctx, conversationID, "Revision request: "+feedback, revisionMessage)

	return &Response{
		ConversationID: conversationID,
		Type:           ResponseRevision,
		Message:        revisionMessage,
		GeneratedEmail: doc,
	}, nil
}

// History returns the recorded turns for a conversation in creation order.
func (s *Service) History(ctx context.Context, conversationID string) ([]types.Turn, error) {
	turns, err := s.ledger.History(ctx, conversationID)
	if err != nil {
		return nil, newError(ErrorInternal, "ledger_read_failed", conversationID, err)
	}
	return turns, nil
}

// State returns the conversation state, or NotFound for an unknown
// identifier.
func (s *Service) State(ctx context.Context, conversationID string) (*ConversationState, error) {
	state, err := s.states.Get(ctx, conversationID)
	if err != nil {
		return nil, newError(ErrorInternal, "state_read_failed", conversationID, err)
	}
	if state == nil {
		return nil, newError(ErrorNotFound, "conversation_unknown", conversationID, nil)
	}
	return state, nil
}

// recordTurns appends the user and assistant turns for one exchange. Ledger
// failures are logged, not surfaced: the state commit already happened and
// the ledger is replay history only.
func (s *Service) recordTurns(ctx context.Context, conversationID, userText, assistantText string) {
	if _, err := s.ledger.Append(ctx, conversationID, types.AuthorUser, userText); err != nil {
		slog.Warn("ledger append failed", "conversation_id", conversationID, "author", types.AuthorUser, "error", err)
	}
	if _, err := s.ledger.Append(ctx, conversationID, types.AuthorAssistant, assistantText); err != nil {
		slog.Warn("ledger append failed", "conversation_id", conversationID, "author", types.AuthorAssistant, "error", err)
	}
}

func seedDetails(result *extract.Result) types.EmailDetails {
	if result == nil {
		return types.EmailDetails{}
	}
	return types.EmailDetails{
		Recipient:      result.Recipient,
		Purpose:        result.Purpose,
		Tone:           result.Tone,
		Language:       result.Language,
		Context:        result.Context,
		AdditionalInfo: result.AdditionalInfo,
	}
}

var newUUID = func() string {
	return uuid.NewString()
}
