package ops

import (
	"context"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/errors"
)

// SettingsOutput is the full persisted user state.
type SettingsOutput struct {
	Permissions        agent.Permissions `json:"permissions"`
	Connected          bool              `json:"connected"`
	Profile            *agent.Profile    `json:"profile,omitempty"`
	Language           string            `json:"language"`
	LanguageName       string            `json:"language_name"`
	OnboardingComplete bool              `json:"onboarding_complete"`
}

// Settings returns the current persisted state with defaults substituted
// for anything absent or unparseable.
func Settings(ctx context.Context, deps *Deps) (*SettingsOutput, error) {
	state, err := loadState(deps.DB)
	if err != nil {
		return nil, err
	}
	return &SettingsOutput{
		Permissions:        state.Perms,
		Connected:          state.Connected,
		Profile:            state.Profile,
		Language:           state.Language,
		LanguageName:       agent.LanguageName(state.Language),
		OnboardingComplete: state.OnboardingComplete,
	}, nil
}

// SetPermissionsInput contains the new capability set.
type SetPermissionsInput struct {
	Permissions agent.Permissions
}

// SetPermissions persists the capability set.
func SetPermissions(ctx context.Context, deps *Deps, input SetPermissionsInput) (*SettingsOutput, error) {
	encoded, err := input.Permissions.Encode()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := db.SetSetting(deps.DB, db.KeyPermissions, string(encoded)); err != nil {
		return nil, err
	}
	return Settings(ctx, deps)
}

// SetLanguageInput contains the new language code.
type SetLanguageInput struct {
	Code string
}

// SetLanguage persists the conversation language.
func SetLanguage(ctx context.Context, deps *Deps, input SetLanguageInput) (*SettingsOutput, error) {
	if !agent.KnownLanguage(input.Code) {
		return nil, errors.NewInvalidRequest("unsupported language code: " + input.Code)
	}
	if err := db.SetSetting(deps.DB, db.KeyLanguage, input.Code); err != nil {
		return nil, err
	}
	return Settings(ctx, deps)
}

// CompleteOnboardingInput carries the capability set chosen during onboarding.
type CompleteOnboardingInput struct {
	Permissions agent.Permissions
}

// CompleteOnboarding stores the chosen permissions, marks onboarding done,
// and clears the onboarding transcript so the next opening turn is a fresh
// briefing rather than a repeat welcome.
func CompleteOnboarding(ctx context.Context, deps *Deps, input CompleteOnboardingInput) (*SettingsOutput, error) {
	encoded, err := input.Permissions.Encode()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := db.SetSetting(deps.DB, db.KeyPermissions, string(encoded)); err != nil {
		return nil, err
	}
	if err := db.SetSetting(deps.DB, db.KeyOnboarding, "true"); err != nil {
		return nil, err
	}
	if _, err := db.ClearMessages(deps.DB); err != nil {
		return nil, err
	}
	return Settings(ctx, deps)
}
