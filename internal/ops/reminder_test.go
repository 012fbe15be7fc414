package ops

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/errors"
)

func TestReminder_NextPendingEvent(t *testing.T) {
	deps, gen := testDeps(t)
	connect(t, deps)
	gen.reply = "Heads up! Project sync-up starts soon."

	out, err := Reminder(context.Background(), deps)
	if err != nil {
		t.Fatalf("Reminder failed: %v", err)
	}
	if out.Event.ID != "gcal-1" {
		t.Errorf("event = %q, want the first pending event", out.Event.ID)
	}
	if !strings.HasPrefix(out.Message.Text, reminderPrefix) {
		t.Errorf("message missing reminder prefix: %q", out.Message.Text)
	}
	if out.Message.Role != agent.RoleAgent {
		t.Errorf("Role = %q, want agent", out.Message.Role)
	}

	prompt := gen.lastTurns[0].Text
	if !strings.Contains(prompt, `"Project sync-up"`) || !strings.Contains(prompt, "10:00 AM") {
		t.Errorf("prompt missing event details:\n%s", prompt)
	}
}

func TestReminder_NotificationsDenied(t *testing.T) {
	deps, _ := testDeps(t)
	connect(t, deps)

	perms := agent.DefaultPermissions()
	perms.Notifications = false
	if _, err := SetPermissions(context.Background(), deps, SetPermissionsInput{Permissions: perms}); err != nil {
		t.Fatalf("SetPermissions failed: %v", err)
	}

	if _, err := Reminder(context.Background(), deps); !errors.Is(err, errors.ErrPermissionDenied) {
		t.Errorf("error = %v, want PERMISSION_DENIED", err)
	}
}

func TestReminder_NotConnected(t *testing.T) {
	deps, _ := testDeps(t)

	if _, err := Reminder(context.Background(), deps); !errors.Is(err, errors.ErrNotConnected) {
		t.Errorf("error = %v, want NOT_CONNECTED", err)
	}
}

func TestReminder_FailureLeavesTranscriptUntouched(t *testing.T) {
	deps, gen := testDeps(t)
	connect(t, deps)
	gen.err = fmt.Errorf("rate limited")

	if _, err := Reminder(context.Background(), deps); err == nil {
		t.Fatal("Reminder succeeded, want error")
	}

	n, err := db.CountMessages(deps.DB)
	if err != nil {
		t.Fatalf("CountMessages failed: %v", err)
	}
	if n != 0 {
		t.Errorf("messages = %d, want 0 after failed reminder", n)
	}
}

func TestReminder_ModelUnavailable(t *testing.T) {
	deps, _ := testDeps(t)
	connect(t, deps)
	deps.Model = nil

	if _, err := Reminder(context.Background(), deps); !errors.Is(err, errors.ErrModelUnavailable) {
		t.Errorf("error = %v, want MODEL_UNAVAILABLE", err)
	}
}
