package agent

import (
	"fmt"
	"strings"
)

// Fixed sentences returned when no data sections can be rendered.
const (
	ContextNotConnected = "No data is available. The user has not connected their account yet. Inform the user that they need to connect their account in settings to get started."

	ContextNoPermissions = "The user has connected their account, but has not granted any permissions for you to view the data. Ask them to enable permissions in settings."

	contextHeader = "This is the user's current data based on the permissions they granted. Use this to inform your responses.\n"
)

// BuildContext renders the visible personal data into the natural-language
// block handed to the model. Output is deterministic: it depends only on the
// arguments, never on the clock or any randomness.
//
// Not connected short-circuits everything, including the data arguments.
// Otherwise sections appear in the fixed order agenda, todos, email, each
// only when visible per Permissions.Visible; a visible-but-empty category
// still gets its section with an explicit "no items" line so the model can
// assert emptiness instead of guessing.
func BuildContext(perms Permissions, connected bool, events, todos []Entry, emails []Email) string {
	if !connected {
		return ContextNotConnected
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	hasData := false

	if perms.Visible(CapAgenda, connected) {
		hasData = true
		b.WriteString("\n## Today's Agenda\n")
		if len(events) > 0 {
			for _, e := range events {
				// Empty time renders as an empty field, the line stays.
				fmt.Fprintf(&b, "- %s %s\n", e.Time, e.Title)
			}
		} else {
			b.WriteString("No agenda items for today.\n")
		}
	}

	if perms.Visible(CapTodos, connected) {
		hasData = true
		b.WriteString("\n## To-Do List\n")
		pending := 0
		for _, item := range todos {
			if item.Completed {
				continue
			}
			fmt.Fprintf(&b, "- %s\n", item.Title)
			pending++
		}
		if pending == 0 {
			b.WriteString("No to-do items.\n")
		}
	}

	if perms.Visible(CapEmail, connected) {
		hasData = true
		unread := make([]Email, 0, len(emails))
		for _, e := range emails {
			if !e.Read {
				unread = append(unread, e)
			}
		}
		fmt.Fprintf(&b, "\n## Emails (%d unread)\n", len(unread))
		if len(unread) > 0 {
			for _, e := range unread {
				fmt.Fprintf(&b, "- From: %s, Subject: %s\n", e.Sender, e.Subject)
			}
		} else {
			b.WriteString("No unread emails.\n")
		}
	}

	if !hasData {
		return ContextNoPermissions
	}

	return b.String()
}
