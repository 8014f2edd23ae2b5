package assistant

import (
	"context"
	"fmt"

	"github.com/kwhite/mailagent/store"
	"github.com/kwhite/mailagent/types"
)

// ConversationState is the one shared mutable record per conversation.
type ConversationState struct {
	ConversationID string               `json:"conversation_id"`
	Details        types.EmailDetails   `json:"details"`
	IsConfirmed    bool                 `json:"is_confirmed"`
	GeneratedEmail *types.EmailDocument `json:"generated_email,omitempty"`
	Phase          types.Phase          `json:"phase"`
}

// StateStore persists conversation state keyed by conversation identifier.
type StateStore struct {
	store store.Store[ConversationState]
}

func NewStateStore(core store.Cache[ConversationState]) *StateStore {
	return &StateStore{store: store.NewStore(core, "assistant:state")}
}

// Get returns the state for a conversation, or (nil, nil) when none exists.
func (s *StateStore) Get(ctx context.Context, conversationID string) (*ConversationState, error) {
	state, ok, err := s.store.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get state %q: %w", conversationID, err)
	}
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *StateStore) Put(ctx context.Context, state *ConversationState) error {
	if state.Phase == "" {
		state.Phase = types.PhaseGathering
	}
	if err := s.store.Set(ctx, state.ConversationID, *state); err != nil {
		return fmt.Errorf("put state %q: %w", state.ConversationID, err)
	}
	return nil
}

// CreateOrMerge installs a fresh state seeded from one extraction pass, or
// merges the seed into whatever state already exists. Creation is idempotent:
// when two first turns race on the same identifier, exactly one record
// survives and the loser's slots are folded in with the same fill-missing
// rule as any later turn. Creation-time defaults apply only to the fresh
// record, never to the merge path.
func (s *StateStore) CreateOrMerge(ctx context.Context, conversationID string, seed types.EmailDetails) (*ConversationState, error) {
	fresh := ConversationState{
		ConversationID: conversationID,
		Details:        withDefaults(seed),
		Phase:          types.PhaseGathering,
	}
	created, err := s.store.SetNX(ctx, conversationID, fresh)
	if err != nil {
		return nil, fmt.Errorf("create state %q: %w", conversationID, err)
	}
	if created {
		return &fresh, nil
	}

	existing, ok, err := s.store.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load state %q after create conflict: %w", conversationID, err)
	}
	if !ok {
		// The record vanished between SetNX and Get; retake the create path.
		return s.CreateOrMerge(ctx, conversationID, seed)
	}
	existing.Details = mergeDetails(existing.Details, seed)
	if err := s.store.Set(ctx, conversationID, existing); err != nil {
		return nil, fmt.Errorf("merge state %q: %w", conversationID, err)
	}
	return &existing, nil
}
