// Package model wraps the generative-AI text API behind a small interface
// so the turn protocol can be exercised without network access.
package model

import (
	"context"

	"github.com/aide-app/aide/internal/agent"
)

// Turn roles as the model API expects them.
const (
	TurnRoleUser  = "user"
	TurnRoleModel = "model"
)

// Turn is one role-tagged step of a conversation as sent to the model.
type Turn struct {
	Role string
	Text string
}

// Generator produces an agent reply for an ordered turn sequence plus a
// system instruction. One call is one attempt: implementations do not retry.
type Generator interface {
	GenerateReply(ctx context.Context, turns []Turn, systemInstruction string) (string, error)
}

// TurnsFromMessages maps a transcript onto model turns, preserving order and
// mapping user→"user", agent→"model". This is the single history-to-turns
// conversion for every caller, so the windowing policy lives here too: when
// maxTurns > 0 only the newest maxTurns messages are kept, which always
// includes the trailing user message. Nothing is ever dropped from the tail.
func TurnsFromMessages(messages []agent.Message, maxTurns int) []Turn {
	if maxTurns > 0 && len(messages) > maxTurns {
		messages = messages[len(messages)-maxTurns:]
	}

	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		role := TurnRoleModel
		if m.Role == agent.RoleUser {
			role = TurnRoleUser
		}
		turns = append(turns, Turn{Role: role, Text: m.Text})
	}
	return turns
}
