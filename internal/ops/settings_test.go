package ops

import (
	"context"
	"testing"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/errors"
)

func TestSettings_Defaults(t *testing.T) {
	deps, _ := testDeps(t)

	out, err := Settings(context.Background(), deps)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if out.Permissions != agent.DefaultPermissions() {
		t.Errorf("Permissions = %+v, want defaults", out.Permissions)
	}
	if out.Connected {
		t.Error("Connected = true, want false")
	}
	if out.Profile != nil {
		t.Errorf("Profile = %+v, want nil", out.Profile)
	}
	if out.Language != "en-US" {
		t.Errorf("Language = %q, want en-US", out.Language)
	}
	if out.LanguageName != "English" {
		t.Errorf("LanguageName = %q, want English", out.LanguageName)
	}
	if out.OnboardingComplete {
		t.Error("OnboardingComplete = true, want false")
	}
}

func TestSettings_CorruptValuesFallBackToDefaults(t *testing.T) {
	deps, _ := testDeps(t)

	if err := db.SetSetting(deps.DB, db.KeyPermissions, "{not json"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := db.SetSetting(deps.DB, db.KeyProfile, "also not json"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	out, err := Settings(context.Background(), deps)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if out.Permissions != agent.DefaultPermissions() {
		t.Errorf("Permissions = %+v, want defaults for corrupt stored value", out.Permissions)
	}
	if out.Profile != nil {
		t.Errorf("Profile = %+v, want nil for corrupt stored value", out.Profile)
	}
}

func TestSetPermissions_RoundTrip(t *testing.T) {
	deps, _ := testDeps(t)

	perms := agent.Permissions{Agenda: false, Todos: true, Email: true, Notifications: false}
	out, err := SetPermissions(context.Background(), deps, SetPermissionsInput{Permissions: perms})
	if err != nil {
		t.Fatalf("SetPermissions failed: %v", err)
	}
	if out.Permissions != perms {
		t.Errorf("Permissions = %+v, want %+v", out.Permissions, perms)
	}

	again, err := Settings(context.Background(), deps)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if again.Permissions != perms {
		t.Errorf("reload = %+v, want %+v", again.Permissions, perms)
	}
}

func TestSetLanguage(t *testing.T) {
	deps, _ := testDeps(t)

	out, err := SetLanguage(context.Background(), deps, SetLanguageInput{Code: "pt-BR"})
	if err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	if out.Language != "pt-BR" || out.LanguageName != "Brazilian Portuguese" {
		t.Errorf("Language = %q / %q, want pt-BR / Brazilian Portuguese", out.Language, out.LanguageName)
	}
}

func TestSetLanguage_UnknownCode(t *testing.T) {
	deps, _ := testDeps(t)

	if _, err := SetLanguage(context.Background(), deps, SetLanguageInput{Code: "xx-XX"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	deps, _ := testDeps(t)

	if _, err := Welcome(context.Background(), deps); err != nil {
		t.Fatalf("Welcome failed: %v", err)
	}

	perms := agent.Permissions{Agenda: true, Todos: false, Email: true, Notifications: true}
	out, err := CompleteOnboarding(context.Background(), deps, CompleteOnboardingInput{Permissions: perms})
	if err != nil {
		t.Fatalf("CompleteOnboarding failed: %v", err)
	}
	if !out.OnboardingComplete {
		t.Error("OnboardingComplete = false, want true")
	}
	if out.Permissions != perms {
		t.Errorf("Permissions = %+v, want %+v", out.Permissions, perms)
	}

	// The onboarding transcript does not carry into the real session.
	history, err := History(context.Background(), deps)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history.Count != 0 {
		t.Errorf("Count = %d, want 0 after onboarding", history.Count)
	}
}

func TestHistory_AppendOrderAndClear(t *testing.T) {
	deps, _ := testDeps(t)

	for _, text := range []string{"one", "two", "three"} {
		if _, err := Chat(context.Background(), deps, ChatInput{Text: text}); err != nil {
			t.Fatalf("Chat(%q) failed: %v", text, err)
		}
	}

	history, err := History(context.Background(), deps)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history.Count != 6 {
		t.Fatalf("Count = %d, want 6", history.Count)
	}
	wantUser := []string{"one", "two", "three"}
	for i, want := range wantUser {
		got := history.Messages[i*2]
		if got.Role != agent.RoleUser || got.Text != want {
			t.Errorf("message %d = %q/%q, want user/%q", i*2, got.Role, got.Text, want)
		}
	}

	cleared, err := ClearHistory(context.Background(), deps)
	if err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if cleared.Cleared != 6 {
		t.Errorf("Cleared = %d, want 6", cleared.Cleared)
	}

	history, err = History(context.Background(), deps)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history.Count != 0 || history.Messages == nil {
		t.Errorf("after clear: Count = %d, Messages nil = %v", history.Count, history.Messages == nil)
	}
}
