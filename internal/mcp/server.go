// Package mcp exposes the agent's operations as MCP tools over stdio, so
// editor and desktop MCP clients can drive the assistant directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"agent_chat": {
		def:     chatToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleChat },
	},
	"agent_welcome": {
		def:     welcomeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWelcome },
	},
	"agent_briefing": {
		def:     briefingToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBriefing },
	},
	"agent_reminder": {
		def:     reminderToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReminder },
	},
	"agent_agenda": {
		def:     agendaToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAgenda },
	},
	"agent_history": {
		def:     historyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistory },
	},
	"agent_connect": {
		def:     connectToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleConnect },
	},
	"agent_disconnect": {
		def:     disconnectToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDisconnect },
	},
	"agent_settings": {
		def:     settingsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettings },
	},
	"agent_permissions_set": {
		def:     permissionsSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePermissionsSet },
	},
	"agent_language_set": {
		def:     languageSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLanguageSet },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns the unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates an MCP server with the agent tools registered.
// Tools listed in deps.Cfg.DisabledTools are excluded from registration.
func NewServer(h *Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"aide",
		version,
		server.WithToolCapabilities(true),
	)

	disabled := make(map[string]bool)
	for _, name := range h.deps.Cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server on stdio transport.
func Run(h *Handlers, version string) error {
	return server.ServeStdio(NewServer(h, version))
}
