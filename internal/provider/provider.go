// Package provider defines the calendar/task/email boundary. The core only
// issues read queries and a connect/disconnect pair; authentication is the
// provider's problem, and the returned profile is what flips the stored
// connection state.
package provider

import (
	"context"

	"github.com/aide-app/aide/internal/agent"
)

// Provider supplies the personal data the agent may summarize.
type Provider interface {
	// Events lists today's scheduled calendar events.
	Events(ctx context.Context) ([]agent.Entry, error)

	// Tasks lists open and completed tasks.
	Tasks(ctx context.Context) ([]agent.Entry, error)

	// Emails lists recent inbox summaries, read and unread.
	Emails(ctx context.Context) ([]agent.Email, error)

	// Connect links an account and returns its profile.
	Connect(ctx context.Context) (agent.Profile, error)

	// Disconnect unlinks the account.
	Disconnect(ctx context.Context) error
}
