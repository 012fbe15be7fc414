package ops

import (
	"context"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/db"
)

// HistoryOutput contains the transcript in append order.
type HistoryOutput struct {
	Messages []agent.Message `json:"messages"`
	Count    int             `json:"count"`
}

// History returns the full transcript.
func History(ctx context.Context, deps *Deps) (*HistoryOutput, error) {
	messages, err := db.ListMessages(deps.DB)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []agent.Message{}
	}
	return &HistoryOutput{Messages: messages, Count: len(messages)}, nil
}

// ClearHistoryOutput reports how many messages were removed.
type ClearHistoryOutput struct {
	Cleared int `json:"cleared"`
}

// ClearHistory drops the whole transcript.
func ClearHistory(ctx context.Context, deps *Deps) (*ClearHistoryOutput, error) {
	cleared, err := db.ClearMessages(deps.DB)
	if err != nil {
		return nil, err
	}
	return &ClearHistoryOutput{Cleared: cleared}, nil
}
