package web

import (
	"net/http"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	deps     *ops.Deps
	renderer *Renderer
}

// HandleChat handles GET /chat — render the transcript and composer.
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	settings, err := ops.Settings(r.Context(), h.deps)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	history, err := ops.History(r.Context(), h.deps)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	messages := make([]chatMessage, 0, len(history.Messages))
	for _, m := range history.Messages {
		cm := chatMessage{
			Role:      m.Role,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
			FromUser:  m.Role == agent.RoleUser,
		}
		if m.Role == agent.RoleAgent {
			cm.HTML = renderMarkdown(m.Text)
		}
		messages = append(messages, cm)
	}

	h.renderer.renderPage(w, "chat", ChatPageData{
		PageData: PageData{
			Title:   "Chat",
			Version: h.renderer.version,
			Nav:     "chat",
		},
		Messages:       messages,
		Connected:      settings.Connected,
		Profile:        settings.Profile,
		Language:       settings.Language,
		ModelAvailable: h.deps.Model != nil,
		Notice:         r.URL.Query().Get("notice"),
	})
}

// HandleChatSend handles POST /chat — run one turn, then redirect back.
func (h *Handlers) HandleChatSend(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Chat(r.Context(), h.deps, ops.ChatInput{Text: r.FormValue("text")}); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

// HandleWelcome handles POST /chat/welcome — generate the first greeting.
func (h *Handlers) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Welcome(r.Context(), h.deps); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

// HandleBriefing handles POST /chat/briefing — generate the day summary.
func (h *Handlers) HandleBriefing(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Briefing(r.Context(), h.deps); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

// HandleReminder handles POST /chat/reminder — push an event reminder.
func (h *Handlers) HandleReminder(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Reminder(r.Context(), h.deps); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

// HandleClearHistory handles POST /chat/clear — wipe the transcript.
func (h *Handlers) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.ClearHistory(r.Context(), h.deps); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

// HandleAgenda handles GET /agenda — merged events and tasks view.
func (h *Handlers) HandleAgenda(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Agenda(r.Context(), h.deps)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "agenda", AgendaPageData{
		PageData: PageData{
			Title:   "Agenda",
			Version: h.renderer.version,
			Nav:     "agenda",
		},
		Connected: result.Connected,
		Items:     result.Items,
	})
}

// HandleSettings handles GET /settings.
func (h *Handlers) HandleSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := ops.Settings(r.Context(), h.deps)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	languages := make([]languageOption, 0, len(agent.LanguageCodes()))
	for _, code := range agent.LanguageCodes() {
		languages = append(languages, languageOption{Code: code, Name: agent.LanguageName(code)})
	}

	h.renderer.renderPage(w, "settings", SettingsPageData{
		PageData: PageData{
			Title:   "Settings",
			Version: h.renderer.version,
			Nav:     "settings",
		},
		Permissions:        settings.Permissions,
		Connected:          settings.Connected,
		Profile:            settings.Profile,
		Language:           settings.Language,
		Languages:          languages,
		OnboardingComplete: settings.OnboardingComplete,
	})
}

// HandlePermissionsSave handles POST /settings/permissions.
// Unchecked boxes are absent from the form, which reads as denied.
func (h *Handlers) HandlePermissionsSave(w http.ResponseWriter, r *http.Request) {
	perms := agent.Permissions{
		Agenda:        r.FormValue("agenda") == "on",
		Todos:         r.FormValue("todos") == "on",
		Email:         r.FormValue("email") == "on",
		Notifications: r.FormValue("notifications") == "on",
	}

	var err error
	if r.FormValue("complete_onboarding") == "on" {
		_, err = ops.CompleteOnboarding(r.Context(), h.deps, ops.CompleteOnboardingInput{Permissions: perms})
	} else {
		_, err = ops.SetPermissions(r.Context(), h.deps, ops.SetPermissionsInput{Permissions: perms})
	}
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// HandleLanguageSave handles POST /settings/language.
func (h *Handlers) HandleLanguageSave(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.SetLanguage(r.Context(), h.deps, ops.SetLanguageInput{Code: r.FormValue("code")}); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// HandleConnect handles POST /settings/connect.
func (h *Handlers) HandleConnect(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Connect(r.Context(), h.deps); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// HandleDisconnect handles POST /settings/disconnect.
func (h *Handlers) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Disconnect(r.Context(), h.deps); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
