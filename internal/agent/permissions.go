package agent

import "encoding/json"

// Capability names one category of personal data the agent may see.
type Capability string

const (
	CapAgenda        Capability = "agenda"
	CapTodos         Capability = "todos"
	CapEmail         Capability = "email"
	CapNotifications Capability = "notifications"
)

// Capabilities lists all known capability names in their fixed order.
var Capabilities = []Capability{CapAgenda, CapTodos, CapEmail, CapNotifications}

// Permissions is the user's granted-capability set.
type Permissions struct {
	Agenda        bool `json:"agenda"`
	Todos         bool `json:"todos"`
	Email         bool `json:"email"`
	Notifications bool `json:"notifications"`
}

// DefaultPermissions returns the first-run capability set.
func DefaultPermissions() Permissions {
	return Permissions{
		Agenda:        true,
		Todos:         true,
		Email:         false,
		Notifications: true,
	}
}

// Visible reports whether a data category may be shown to the agent.
// Data capabilities (agenda, todos, email) require a connected account
// regardless of the stored flag; notifications is independent of connection.
// Unknown capability names resolve to not-visible.
func (p Permissions) Visible(c Capability, connected bool) bool {
	switch c {
	case CapAgenda:
		return connected && p.Agenda
	case CapTodos:
		return connected && p.Todos
	case CapEmail:
		return connected && p.Email
	case CapNotifications:
		return p.Notifications
	default:
		return false
	}
}

// ParsePermissions decodes a stored permissions record. Unknown fields are
// ignored; an unparseable value falls back to the first-run defaults so a
// corrupt settings row never blocks startup.
func ParsePermissions(data []byte) Permissions {
	if len(data) == 0 {
		return DefaultPermissions()
	}
	var p Permissions
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultPermissions()
	}
	return p
}

// Encode serializes the capability set for the settings store.
func (p Permissions) Encode() ([]byte, error) {
	return json.Marshal(p)
}
