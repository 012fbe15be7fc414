package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/errors"
	"github.com/aide-app/aide/internal/model"
)

// Apology is appended as the agent's reply when a model call fails.
// One attempt per turn, no automatic retry; the real error goes to the log.
const Apology = "Sorry, I encountered an error. Please try again."

const chatSystemInstruction = "You are a helpful personal AI assistant. Here is the user's current data context, which you should use to answer questions:\n%s\nIMPORTANT: You must respond in %s."

// ChatInput contains parameters for the Chat operation.
type ChatInput struct {
	Text string // the freshly typed user message
}

// ChatOutput contains the result of the Chat operation.
type ChatOutput struct {
	UserMessage *agent.Message `json:"user_message"`
	Reply       *agent.Message `json:"reply"`
	// Failed reports that the reply is the fixed apology rather than a
	// model-generated answer.
	Failed bool `json:"failed,omitempty"`
}

// Chat runs one conversational turn: append the user message, assemble the
// context from visible data, send the full (windowed) history to the model,
// and append exactly one agent reply — the model's answer or the apology.
func Chat(ctx context.Context, deps *Deps, input ChatInput) (*ChatOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}
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

	userMsg, err := appendMessage(deps.DB, agent.RoleUser, text)
	if err != nil {
		return nil, err
	}

	// The stored transcript now ends with the new user message, so mapping
	// it to turns includes that message exactly once.
	history, err := db.ListMessages(deps.DB)
	if err != nil {
		return nil, err
	}
	turns := model.TurnsFromMessages(history, deps.maxHistoryTurns())

	events, todos, emails := visibleData(ctx, deps, state)
	contextBlock := agent.BuildContext(state.Perms, state.Connected, events, todos, emails)
	system := fmt.Sprintf(chatSystemInstruction, contextBlock, agent.LanguageName(state.Language))

	replyText, genErr := deps.Model.GenerateReply(ctx, turns, system)
	failed := genErr != nil
	if failed {
		deps.Log.Error().Err(genErr).Msg("model call failed, substituting apology")
		replyText = Apology
	}

	reply, err := appendMessage(deps.DB, agent.RoleAgent, replyText)
	if err != nil {
		return nil, err
	}

	return &ChatOutput{
		UserMessage: userMsg,
		Reply:       reply,
		Failed:      failed,
	}, nil
}
