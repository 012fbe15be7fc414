// Package ops implements the agent's operations: conversational turns,
// agenda views, account connection, and settings. Each operation is a
// function over Deps and a typed input, returning a typed output.
package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/config"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/errors"
	"github.com/aide-app/aide/internal/model"
	"github.com/aide-app/aide/internal/provider"
)

// Deps bundles what operations need. Model may be nil when no API key is
// configured; turn operations then fail fast with MODEL_UNAVAILABLE instead
// of touching the transcript.
type Deps struct {
	DB       *sql.DB
	Cfg      *config.Config
	Model    model.Generator
	Provider provider.Provider
	Log      zerolog.Logger

	gate turnGate
}

// turnGate is the per-process conversation state machine: Idle ↔ AwaitingReply.
// A second send while a reply is outstanding is rejected, not queued.
type turnGate struct {
	mu       sync.Mutex
	awaiting bool
}

// begin moves Idle → AwaitingReply. Returns false if already awaiting.
func (g *turnGate) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.awaiting {
		return false
	}
	g.awaiting = true
	return true
}

// end moves back to Idle. Called unconditionally, success or failure.
func (g *turnGate) end() {
	g.mu.Lock()
	g.awaiting = false
	g.mu.Unlock()
}

// sessionState is the persisted per-user state, loaded fresh per operation.
type sessionState struct {
	Perms              agent.Permissions
	Connected          bool
	Profile            *agent.Profile
	Language           string
	OnboardingComplete bool
}

// loadState reads the settings keys, substituting defaults for absent or
// unparseable values so corrupt state never blocks an operation.
func loadState(database *sql.DB) (*sessionState, error) {
	permsRaw, err := db.GetSetting(database, db.KeyPermissions)
	if err != nil {
		return nil, err
	}
	connectedRaw, err := db.GetSetting(database, db.KeyConnected)
	if err != nil {
		return nil, err
	}
	profileRaw, err := db.GetSetting(database, db.KeyProfile)
	if err != nil {
		return nil, err
	}
	language, err := db.GetSetting(database, db.KeyLanguage)
	if err != nil {
		return nil, err
	}
	onboarding, err := db.GetSetting(database, db.KeyOnboarding)
	if err != nil {
		return nil, err
	}

	state := &sessionState{
		Perms:              agent.ParsePermissions([]byte(permsRaw)),
		Connected:          connectedRaw == "true",
		Language:           language,
		OnboardingComplete: onboarding == "true",
	}
	if state.Language == "" {
		state.Language = agent.DefaultLanguage
	}
	if profileRaw != "" {
		var p agent.Profile
		if err := json.Unmarshal([]byte(profileRaw), &p); err == nil {
			state.Profile = &p
		}
	}
	return state, nil
}

// appendMessage persists one transcript message and returns it.
func appendMessage(database *sql.DB, role agent.Role, text string) (*agent.Message, error) {
	id, err := agent.NewMessageID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	m := &agent.Message{
		ID:        id,
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().Unix(),
	}
	if err := db.InsertMessage(database, m); err != nil {
		return nil, err
	}
	return m, nil
}

// visibleData fetches the data categories the gate allows. A provider
// failure for one category degrades to an empty list for that category and
// is logged; it never blocks the turn.
func visibleData(ctx context.Context, deps *Deps, state *sessionState) (events, todos []agent.Entry, emails []agent.Email) {
	if deps.Provider == nil || !state.Connected {
		return nil, nil, nil
	}

	var err error
	if state.Perms.Visible(agent.CapAgenda, state.Connected) {
		if events, err = deps.Provider.Events(ctx); err != nil {
			deps.Log.Warn().Err(err).Msg("event fetch failed, continuing without agenda")
			events = nil
		}
	}
	if state.Perms.Visible(agent.CapTodos, state.Connected) {
		if todos, err = deps.Provider.Tasks(ctx); err != nil {
			deps.Log.Warn().Err(err).Msg("task fetch failed, continuing without todos")
			todos = nil
		}
	}
	if state.Perms.Visible(agent.CapEmail, state.Connected) {
		if emails, err = deps.Provider.Emails(ctx); err != nil {
			deps.Log.Warn().Err(err).Msg("email fetch failed, continuing without email")
			emails = nil
		}
	}
	return events, todos, emails
}

// requireModel fails fast when no generator is configured.
func (d *Deps) requireModel() error {
	if d.Model == nil {
		keyEnv := "GEMINI_API_KEY"
		if d.Cfg != nil && d.Cfg.APIKeyEnv != "" {
			keyEnv = d.Cfg.APIKeyEnv
		}
		return errors.NewModelUnavailable(keyEnv)
	}
	return nil
}

func (d *Deps) maxHistoryTurns() int {
	if d.Cfg != nil && d.Cfg.MaxHistoryTurns > 0 {
		return d.Cfg.MaxHistoryTurns
	}
	return config.DefaultConfig().MaxHistoryTurns
}
