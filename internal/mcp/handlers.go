package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/errors"
	"github.com/aide-app/aide/internal/ops"
)

// Handlers holds the dependencies for MCP tool handlers.
type Handlers struct {
	deps *ops.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *ops.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Request types for each tool

// ChatRequest represents the arguments for agent_chat.
type ChatRequest struct {
	Text string `json:"text"`
}

// HistoryRequest represents the arguments for agent_history.
type HistoryRequest struct {
	Clear bool `json:"clear,omitempty"`
}

// PermissionsSetRequest represents the arguments for agent_permissions_set.
type PermissionsSetRequest struct {
	Agenda             bool `json:"agenda,omitempty"`
	Todos              bool `json:"todos,omitempty"`
	Email              bool `json:"email,omitempty"`
	Notifications      bool `json:"notifications,omitempty"`
	CompleteOnboarding bool `json:"complete_onboarding,omitempty"`
}

// LanguageSetRequest represents the arguments for agent_language_set.
type LanguageSetRequest struct {
	Code string `json:"code"`
}

// Handler implementations

// HandleChat handles the agent_chat tool call.
func (h *Handlers) HandleChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ChatRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Chat(ctx, h.deps, ops.ChatInput{Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleWelcome handles the agent_welcome tool call.
func (h *Handlers) HandleWelcome(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Welcome(ctx, h.deps)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleBriefing handles the agent_briefing tool call.
func (h *Handlers) HandleBriefing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Briefing(ctx, h.deps)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleReminder handles the agent_reminder tool call.
func (h *Handlers) HandleReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Reminder(ctx, h.deps)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAgenda handles the agent_agenda tool call.
func (h *Handlers) HandleAgenda(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Agenda(ctx, h.deps)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistory handles the agent_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Clear {
		result, err := ops.ClearHistory(ctx, h.deps)
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(result)
	}

	result, err := ops.History(ctx, h.deps)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleConnect handles the agent_connect tool call.
func (h *Handlers) HandleConnect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Connect(ctx, h.deps)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDisconnect handles the agent_disconnect tool call.
func (h *Handlers) HandleDisconnect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Disconnect(ctx, h.deps)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSettings handles the agent_settings tool call.
func (h *Handlers) HandleSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Settings(ctx, h.deps)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePermissionsSet handles the agent_permissions_set tool call.
func (h *Handlers) HandlePermissionsSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PermissionsSetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	perms := agent.Permissions{
		Agenda:        input.Agenda,
		Todos:         input.Todos,
		Email:         input.Email,
		Notifications: input.Notifications,
	}

	if input.CompleteOnboarding {
		result, err := ops.CompleteOnboarding(ctx, h.deps, ops.CompleteOnboardingInput{Permissions: perms})
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(result)
	}

	result, err := ops.SetPermissions(ctx, h.deps, ops.SetPermissionsInput{Permissions: perms})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLanguageSet handles the agent_language_set tool call.
func (h *Handlers) HandleLanguageSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LanguageSetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SetLanguage(ctx, h.deps, ops.SetLanguageInput{Code: input.Code})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to avoid leaking paths or SQL text.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if aErr, ok := err.(*errors.AideError); ok {
		errorObj := map[string]any{
			"code":    aErr.Code,
			"message": aErr.Message,
			"status":  aErr.Status,
		}
		if aErr.Code != errors.ErrInternal && aErr.Details != nil {
			errorObj["details"] = aErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
