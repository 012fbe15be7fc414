package ops

import (
	"context"
	"fmt"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/errors"
	"github.com/aide-app/aide/internal/model"
)

// Opening-turn prompts. These are sent as a single user turn with no prior
// history; the reply becomes the first agent message of the session.
const (
	welcomePrompt = "Generate a friendly and welcoming message for a user who is opening a personal AI assistant app for the first time. The message should be brief, introduce yourself as their personal AI agent, and encourage them to configure permissions to get started. IMPORTANT: The response must be written in %s."

	briefingPrompt = "You are a personal AI assistant. The user has just connected their account. Based on their data below, provide a helpful and proactive summary of their day and ask how you can help. Be friendly and concise. IMPORTANT: The entire response must be in %s.\n\n%s"

	// Fallback greetings when the opening model call fails.
	welcomeFallback  = "Hello! I'm your AI assistant. Let's get you set up."
	briefingFallback = "Hello! How can I help you today?"
)

// OpeningOutput contains the agent message produced by an opening turn.
type OpeningOutput struct {
	Message *agent.Message `json:"message"`
	Failed  bool           `json:"failed,omitempty"`
}

// Welcome generates the onboarding greeting. It carries no data context:
// the user hasn't granted anything yet.
func Welcome(ctx context.Context, deps *Deps) (*OpeningOutput, error) {
	if err := deps.requireModel(); err != nil {
		return nil, err
	}
	if !deps.gate.begin() {
		return nil, errors.NewAgentBusy()
	}
	defer deps.gate.end()

	state, err := loadState(deps.DB)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(welcomePrompt, agent.LanguageName(state.Language))
	return openingTurn(ctx, deps, prompt, welcomeFallback)
}

// Briefing generates the post-connect day summary from the visible data.
func Briefing(ctx context.Context, deps *Deps) (*OpeningOutput, error) {
	if err := deps.requireModel(); err != nil {
		return nil, err
	}
	if !deps.gate.begin() {
		return nil, errors.NewAgentBusy()
	}
	defer deps.gate.end()

	state, err := loadState(deps.DB)
	if err != nil {
		return nil, err
	}

	events, todos, emails := visibleData(ctx, deps, state)
	contextBlock := agent.BuildContext(state.Perms, state.Connected, events, todos, emails)
	prompt := fmt.Sprintf(briefingPrompt, agent.LanguageName(state.Language), contextBlock)
	return openingTurn(ctx, deps, prompt, briefingFallback)
}

// openingTurn sends a zero-history prompt and appends exactly one agent
// message: the reply, or the fallback when the call fails.
func openingTurn(ctx context.Context, deps *Deps, prompt, fallback string) (*OpeningOutput, error) {
	turns := []model.Turn{{Role: model.TurnRoleUser, Text: prompt}}

	text, genErr := deps.Model.GenerateReply(ctx, turns, "")
	failed := genErr != nil
	if failed {
		deps.Log.Error().Err(genErr).Msg("opening turn failed, substituting fallback greeting")
		text = fallback
	}

	message, err := appendMessage(deps.DB, agent.RoleAgent, text)
	if err != nil {
		return nil, err
	}

	return &OpeningOutput{Message: message, Failed: failed}, nil
}
