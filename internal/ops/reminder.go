package ops

import (
	"context"
	"fmt"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/errors"
	"github.com/aide-app/aide/internal/model"
)

const reminderPrompt = "You are a personal AI assistant. Generate a short, friendly, and helpful notification message for the user. The message should remind them of their upcoming event titled %q scheduled for %s. Assume the event is about 15-30 minutes away. Keep it under 150 characters. IMPORTANT: The entire response must be in %s."

// reminderPrefix marks proactive reminders in the transcript.
const reminderPrefix = "🔔 *Reminder:*\n"

// ReminderOutput contains the generated reminder.
type ReminderOutput struct {
	Event   agent.Entry    `json:"event"`
	Message *agent.Message `json:"message"`
}

// Reminder generates a proactive notification for the next pending scheduled
// event and appends it to the transcript as an agent message. Gated on the
// notifications permission, which works even without a connected account —
// but the event data itself still requires one.
func Reminder(ctx context.Context, deps *Deps) (*ReminderOutput, error) {
	if err := deps.requireModel(); err != nil {
		return nil, err
	}

	state, err := loadState(deps.DB)
	if err != nil {
		return nil, err
	}
	if !state.Perms.Visible(agent.CapNotifications, state.Connected) {
		return nil, errors.NewPermissionDenied(string(agent.CapNotifications))
	}
	if !state.Connected {
		return nil, errors.NewNotConnected()
	}

	events, _, _ := visibleData(ctx, deps, state)
	var upcoming *agent.Entry
	for i := range events {
		if events[i].Type == agent.EntryEvent && !events[i].Completed {
			upcoming = &events[i]
			break
		}
	}
	if upcoming == nil {
		return nil, errors.NewNotFound("no upcoming events")
	}

	prompt := fmt.Sprintf(reminderPrompt, upcoming.Title, upcoming.Time, agent.LanguageName(state.Language))
	turns := []model.Turn{{Role: model.TurnRoleUser, Text: prompt}}

	text, genErr := deps.Model.GenerateReply(ctx, turns, "")
	if genErr != nil {
		// Reminders are optional; a failed one leaves no trace in the
		// transcript, unlike a chat turn.
		deps.Log.Error().Err(genErr).Msg("reminder generation failed")
		return nil, errors.NewInternal(genErr)
	}

	message, err := appendMessage(deps.DB, agent.RoleAgent, reminderPrefix+text)
	if err != nil {
		return nil, err
	}

	return &ReminderOutput{Event: *upcoming, Message: message}, nil
}
