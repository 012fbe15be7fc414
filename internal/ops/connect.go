package ops

import (
	"context"
	"encoding/json"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/errors"
)

// ConnectOutput contains the result of linking an account.
type ConnectOutput struct {
	Profile agent.Profile `json:"profile"`
	// Cleared is how many transcript messages were dropped so the next
	// opening turn starts from fresh context.
	Cleared int `json:"cleared"`
}

// Connect links the account through the provider, persists the connection
// state and profile, and resets the transcript.
func Connect(ctx context.Context, deps *Deps) (*ConnectOutput, error) {
	if deps.Provider == nil {
		return nil, errors.NewProviderUnavailable(nil)
	}

	profile, err := deps.Provider.Connect(ctx)
	if err != nil {
		return nil, errors.NewProviderUnavailable(err)
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := db.SetSetting(deps.DB, db.KeyConnected, "true"); err != nil {
		return nil, err
	}
	if err := db.SetSetting(deps.DB, db.KeyProfile, string(profileJSON)); err != nil {
		return nil, err
	}

	cleared, err := db.ClearMessages(deps.DB)
	if err != nil {
		return nil, err
	}

	return &ConnectOutput{Profile: profile, Cleared: cleared}, nil
}

// DisconnectOutput contains the result of unlinking the account.
type DisconnectOutput struct {
	Cleared int `json:"cleared"`
}

// Disconnect unlinks the account, drops the stored profile, resets the data
// permissions (notifications is kept), and clears the transcript so no stale
// personal data survives the disconnect.
func Disconnect(ctx context.Context, deps *Deps) (*DisconnectOutput, error) {
	state, err := loadState(deps.DB)
	if err != nil {
		return nil, err
	}
	if !state.Connected {
		return nil, errors.NewNotConnected()
	}

	if deps.Provider != nil {
		if err := deps.Provider.Disconnect(ctx); err != nil {
			// The local state is the source of truth; log and proceed.
			deps.Log.Warn().Err(err).Msg("provider disconnect failed, clearing local state anyway")
		}
	}

	if err := db.SetSetting(deps.DB, db.KeyConnected, ""); err != nil {
		return nil, err
	}
	if err := db.DeleteSetting(deps.DB, db.KeyProfile); err != nil {
		return nil, err
	}

	perms := state.Perms
	perms.Agenda = false
	perms.Todos = false
	perms.Email = false
	encoded, err := perms.Encode()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := db.SetSetting(deps.DB, db.KeyPermissions, string(encoded)); err != nil {
		return nil, err
	}

	cleared, err := db.ClearMessages(deps.DB)
	if err != nil {
		return nil, err
	}

	return &DisconnectOutput{Cleared: cleared}, nil
}
