package store

import (
	"context"

	"github.com/kwhite/mailagent/types"
)

// Ledger is the append-only turn log per conversation. It is a log, not a
// dedup store: a retried append may legitimately duplicate a turn.
type Ledger struct {
	store Store[[]types.Turn]
}

func NewLedger(core Cache[[]types.Turn]) *Ledger {
	return &Ledger{store: NewStore(core, "assistant:turns")}
}

// Append records one turn with the next ascending sequence number.
func (l *Ledger) Append(ctx context.Context, conversationID string, author types.Author, content string) (types.Turn, error) {
	turns, _, err := l.store.Get(ctx, conversationID)
	if err != nil {
		return types.Turn{}, err
	}
	turn := types.Turn{
		ConversationID: conversationID,
		Author:         author,
		Content:        content,
		Seq:            len(turns) + 1,
	}
	turns = append(turns, turn)
	if err := l.store.Set(ctx, conversationID, turns); err != nil {
		return types.Turn{}, err
	}
	return turn, nil
}

// History returns all turns for a conversation in creation order. Unknown
// conversations yield an empty history, not an error.
func (l *Ledger) History(ctx context.Context, conversationID string) ([]types.Turn, error) {
	turns, ok, err := l.store.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return turns, nil
}
