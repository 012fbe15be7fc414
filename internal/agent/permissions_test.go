package agent

import "testing"

func TestVisible_NotConnectedHidesData(t *testing.T) {
	// Even with every flag on, data capabilities are hidden when disconnected.
	p := Permissions{Agenda: true, Todos: true, Email: true, Notifications: true}

	for _, c := range []Capability{CapAgenda, CapTodos, CapEmail} {
		if p.Visible(c, false) {
			t.Errorf("Visible(%s, disconnected) = true, want false", c)
		}
	}
}

func TestVisible_NotificationsIndependentOfConnection(t *testing.T) {
	p := Permissions{Notifications: true}

	if !p.Visible(CapNotifications, false) {
		t.Error("Visible(notifications, disconnected) = false, want true")
	}
	if !p.Visible(CapNotifications, true) {
		t.Error("Visible(notifications, connected) = false, want true")
	}

	p.Notifications = false
	if p.Visible(CapNotifications, true) {
		t.Error("Visible(notifications) = true with flag off, want false")
	}
}

func TestVisible_ConnectedFollowsFlags(t *testing.T) {
	p := Permissions{Agenda: true, Todos: false, Email: true}

	if !p.Visible(CapAgenda, true) {
		t.Error("Visible(agenda) = false, want true")
	}
	if p.Visible(CapTodos, true) {
		t.Error("Visible(todos) = true, want false")
	}
	if !p.Visible(CapEmail, true) {
		t.Error("Visible(email) = false, want true")
	}
}

func TestVisible_UnknownCapability(t *testing.T) {
	p := Permissions{Agenda: true, Todos: true, Email: true, Notifications: true}

	if p.Visible(Capability("location"), true) {
		t.Error("Visible(unknown) = true, want false")
	}
}

func TestDefaultPermissions(t *testing.T) {
	p := DefaultPermissions()

	if !p.Agenda || !p.Todos || !p.Notifications {
		t.Errorf("defaults = %+v, want agenda/todos/notifications on", p)
	}
	if p.Email {
		t.Error("defaults enable email, want off")
	}
}

func TestParsePermissions_RoundTrip(t *testing.T) {
	orig := Permissions{Agenda: false, Todos: true, Email: true, Notifications: false}

	data, err := orig.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	parsed := ParsePermissions(data)
	if parsed != orig {
		t.Errorf("ParsePermissions() = %+v, want %+v", parsed, orig)
	}
}

func TestParsePermissions_IgnoresUnknownFlags(t *testing.T) {
	parsed := ParsePermissions([]byte(`{"agenda": false, "location": true, "todos": true}`))

	if parsed.Agenda {
		t.Error("Agenda = true, want false")
	}
	if !parsed.Todos {
		t.Error("Todos = false, want true")
	}
}

func TestParsePermissions_CorruptFallsBackToDefaults(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(""), []byte("{oops"), []byte("42")} {
		parsed := ParsePermissions(data)
		if parsed != DefaultPermissions() {
			t.Errorf("ParsePermissions(%q) = %+v, want defaults", data, parsed)
		}
	}
}
