package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aide-app/aide/internal/config"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/logging"
	"github.com/aide-app/aide/internal/model"
	"github.com/aide-app/aide/internal/ops"
	"github.com/aide-app/aide/internal/provider"
)

// scriptedModel returns a fixed reply or error.
type scriptedModel struct {
	reply string
	err   error
}

func (s *scriptedModel) GenerateReply(ctx context.Context, turns []model.Turn, system string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// testHandlers creates Handlers over a temporary database and a scripted model.
func testHandlers(t *testing.T) *Handlers {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	deps := &ops.Deps{
		DB:       database,
		Cfg:      config.DefaultConfig(),
		Model:    &scriptedModel{reply: "Hi there!"},
		Provider: provider.NewMock(),
		Log:      logging.Nop(),
	}
	return NewHandlers(deps)
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// connectAccount links the demo account through the handler layer.
func connectAccount(t *testing.T, h *Handlers) {
	t.Helper()
	result, err := h.HandleConnect(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("connect handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("connect failed: %v", extractErrorMessage(result))
	}
}

func TestToolRegistry(t *testing.T) {
	names := AllToolNames()
	if len(names) != 11 {
		t.Errorf("registered %d tools, want 11", len(names))
	}
	for _, name := range names {
		if !strings.HasPrefix(name, "agent_") {
			t.Errorf("tool %q missing agent_ prefix", name)
		}
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"agent_chat", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v, want [bogus_tool]", unknown)
	}
}

func TestNewServer_SkipsDisabledTools(t *testing.T) {
	h := testHandlers(t)
	h.deps.Cfg.DisabledTools = []string{"agent_reminder", "agent_connect"}

	s := NewServer(h, "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestHandleChat(t *testing.T) {
	h := testHandlers(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name:      "valid message",
			args:      map[string]any{"text": "hello"},
			wantError: false,
		},
		{
			name:      "missing text",
			args:      map[string]any{},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "blank text",
			args:      map[string]any{"text": "   "},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleChat(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractErrorMessage(result))
			}
		})
	}
}

func TestHandleChat_ModelUnavailable(t *testing.T) {
	h := testHandlers(t)
	h.deps.Model = nil

	result, err := h.HandleChat(context.Background(), makeRequest(map[string]any{"text": "hi"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	assertErrorCode(t, result, "MODEL_UNAVAILABLE")
}

func TestHandleWelcomeAndBriefing(t *testing.T) {
	h := testHandlers(t)
	ctx := context.Background()

	result, err := h.HandleWelcome(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("welcome handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("welcome failed: %v", extractErrorMessage(result))
	}

	connectAccount(t, h)

	result, err = h.HandleBriefing(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("briefing handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("briefing failed: %v", extractErrorMessage(result))
	}
}

func TestHandleReminder_RequiresConnection(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandleReminder(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	assertErrorCode(t, result, "NOT_CONNECTED")
}

func TestHandleAgenda(t *testing.T) {
	h := testHandlers(t)
	ctx := context.Background()
	connectAccount(t, h)

	result, err := h.HandleAgenda(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("agenda failed: %v", extractErrorMessage(result))
	}

	payload := resultJSON(t, result)
	items, ok := payload["items"].([]any)
	if !ok {
		t.Fatalf("no items array in payload: %v", payload)
	}
	if len(items) != 6 {
		t.Errorf("len(items) = %d, want 6", len(items))
	}
}

func TestHandleHistory_ListAndClear(t *testing.T) {
	h := testHandlers(t)
	ctx := context.Background()

	if result, _ := h.HandleChat(ctx, makeRequest(map[string]any{"text": "hello"})); result.IsError {
		t.Fatalf("setup chat failed: %v", extractErrorMessage(result))
	}

	result, err := h.HandleHistory(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload := resultJSON(t, result)
	if count, _ := payload["count"].(float64); count != 2 {
		t.Errorf("count = %v, want 2", payload["count"])
	}

	result, err = h.HandleHistory(ctx, makeRequest(map[string]any{"clear": true}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload = resultJSON(t, result)
	if cleared, _ := payload["cleared"].(float64); cleared != 2 {
		t.Errorf("cleared = %v, want 2", payload["cleared"])
	}
}

func TestHandleDisconnect_NotConnected(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandleDisconnect(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	assertErrorCode(t, result, "NOT_CONNECTED")
}

func TestHandlePermissionsSet(t *testing.T) {
	h := testHandlers(t)
	ctx := context.Background()

	result, err := h.HandlePermissionsSet(ctx, makeRequest(map[string]any{
		"agenda": true,
		"email":  true,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("permissions set failed: %v", extractErrorMessage(result))
	}

	payload := resultJSON(t, result)
	perms, ok := payload["permissions"].(map[string]any)
	if !ok {
		t.Fatalf("no permissions object in payload: %v", payload)
	}
	if perms["agenda"] != true || perms["email"] != true {
		t.Errorf("granted capabilities not persisted: %v", perms)
	}
	if perms["todos"] != false || perms["notifications"] != false {
		t.Errorf("omitted capabilities not denied: %v", perms)
	}
}

func TestHandlePermissionsSet_CompletesOnboarding(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandlePermissionsSet(context.Background(), makeRequest(map[string]any{
		"agenda":              true,
		"notifications":       true,
		"complete_onboarding": true,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload := resultJSON(t, result)
	if payload["onboarding_complete"] != true {
		t.Errorf("onboarding_complete = %v, want true", payload["onboarding_complete"])
	}
}

func TestHandleLanguageSet(t *testing.T) {
	h := testHandlers(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name:      "supported code",
			args:      map[string]any{"code": "pt-BR"},
			wantError: false,
		},
		{
			name:      "unknown code",
			args:      map[string]any{"code": "fr-FR"},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleLanguageSet(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractErrorMessage(result))
			}
		})
	}
}

// Test helpers

// resultJSON unmarshals a success result's JSON content.
func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("content is not TextContent")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	return payload
}

// assertErrorCode checks the structured error code in an error result.
func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	payload := resultJSON(t, result)
	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}
	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}
	if code != expectedCode {
		t.Errorf("error code = %q, want %q", code, expectedCode)
	}
}

// extractErrorMessage returns the raw text of an error result for messages.
func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}
	return text.Text
}
