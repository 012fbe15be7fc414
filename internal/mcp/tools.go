package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Descriptions are written for the calling model: say what
// the tool does and when to reach for it.

var chatToolDef = mcp.NewTool("agent_chat",
	mcp.WithDescription("Send a user message to the assistant and get its reply. The turn is appended to the persistent transcript. Fails with AGENT_BUSY if a reply is already in flight."),
	mcp.WithString("text", mcp.Required(), mcp.Description("The user's message")),
)

var welcomeToolDef = mcp.NewTool("agent_welcome",
	mcp.WithDescription("Generate the first-launch onboarding greeting. Carries no user data; use before any permissions are granted."),
)

var briefingToolDef = mcp.NewTool("agent_briefing",
	mcp.WithDescription("Generate a proactive day summary from the connected account's visible data. Use right after connecting an account."),
)

var reminderToolDef = mcp.NewTool("agent_reminder",
	mcp.WithDescription("Generate a short notification for the next upcoming calendar event and append it to the transcript. Requires the notifications permission and a connected account."),
)

var agendaToolDef = mcp.NewTool("agent_agenda",
	mcp.WithDescription("Return the merged view of today's events and tasks, filtered by the granted permissions. Returns an empty view when no account is connected."),
)

var historyToolDef = mcp.NewTool("agent_history",
	mcp.WithDescription("Return the conversation transcript in order, or clear it."),
	mcp.WithBoolean("clear", mcp.Description("Clear the transcript instead of listing it")),
)

var connectToolDef = mcp.NewTool("agent_connect",
	mcp.WithDescription("Link the user's account so calendar, task, and email data become available. Resets the transcript."),
)

var disconnectToolDef = mcp.NewTool("agent_disconnect",
	mcp.WithDescription("Unlink the account. Drops the stored profile, revokes the data permissions, and clears the transcript."),
)

var settingsToolDef = mcp.NewTool("agent_settings",
	mcp.WithDescription("Return the persisted user state: permissions, connection status, profile, language, and onboarding progress."),
)

var permissionsSetToolDef = mcp.NewTool("agent_permissions_set",
	mcp.WithDescription("Set the data-sharing permissions. Omitted capabilities are treated as denied."),
	mcp.WithBoolean("agenda", mcp.Description("Allow reading calendar events")),
	mcp.WithBoolean("todos", mcp.Description("Allow reading tasks")),
	mcp.WithBoolean("email", mcp.Description("Allow reading email metadata")),
	mcp.WithBoolean("notifications", mcp.Description("Allow proactive reminders")),
	mcp.WithBoolean("complete_onboarding", mcp.Description("Also mark onboarding as finished and reset the transcript")),
)

var languageSetToolDef = mcp.NewTool("agent_language_set",
	mcp.WithDescription("Set the conversation language. Supported codes: en-US, pt-BR."),
	mcp.WithString("code", mcp.Required(), mcp.Description("BCP 47 language code")),
)
