package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/errors"
	"github.com/aide-app/aide/internal/ops"
	"github.com/aide-app/aide/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(deps *ops.Deps) *cli.App {
	app := &cli.App{
		Name:    "aide",
		Usage:   "Personal AI agent",
		Version: Version,
		Commands: []*cli.Command{
			chatCmd(deps),
			welcomeCmd(deps),
			briefingCmd(deps),
			reminderCmd(deps),
			agendaCmd(deps),
			connectCmd(deps),
			disconnectCmd(deps),
			settingsCmd(deps),
			permissionsCmd(deps),
			languageCmd(deps),
			historyCmd(deps),
			uiCmd(deps),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// chatCmd creates the chat command.
func chatCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:      "chat",
		Usage:     "Send a message to the assistant (argument or stdin)",
		ArgsUsage: "[text]",
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if text == "" && stdinHasData() {
				var err error
				text, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}
			if text == "" {
				return outputError(errors.NewInvalidRequest("text is required: pass it as an argument or pipe it via stdin"))
			}

			output, err := ops.Chat(c.Context, deps, ops.ChatInput{Text: text})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// welcomeCmd creates the welcome command.
func welcomeCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "welcome",
		Usage: "Generate the first-launch greeting",
		Action: func(c *cli.Context) error {
			output, err := ops.Welcome(c.Context, deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// briefingCmd creates the briefing command.
func briefingCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "briefing",
		Usage: "Generate a summary of the day from connected data",
		Action: func(c *cli.Context) error {
			output, err := ops.Briefing(c.Context, deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// reminderCmd creates the reminder command.
func reminderCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "reminder",
		Usage: "Generate a notification for the next upcoming event",
		Action: func(c *cli.Context) error {
			output, err := ops.Reminder(c.Context, deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// agendaCmd creates the agenda command.
func agendaCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "agenda",
		Usage: "Show today's events and tasks",
		Action: func(c *cli.Context) error {
			output, err := ops.Agenda(c.Context, deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// connectCmd creates the connect command.
func connectCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "connect",
		Usage: "Link the account so data becomes available",
		Action: func(c *cli.Context) error {
			output, err := ops.Connect(c.Context, deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// disconnectCmd creates the disconnect command.
func disconnectCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "disconnect",
		Usage: "Unlink the account and clear local data",
		Action: func(c *cli.Context) error {
			output, err := ops.Disconnect(c.Context, deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// settingsCmd creates the settings command.
func settingsCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show the persisted user state",
		Action: func(c *cli.Context) error {
			output, err := ops.Settings(c.Context, deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// permissionsCmd creates the permissions command.
func permissionsCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "permissions",
		Usage: "Set data-sharing permissions (unset flags are denied)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "agenda", Usage: "Allow reading calendar events"},
			&cli.BoolFlag{Name: "todos", Usage: "Allow reading tasks"},
			&cli.BoolFlag{Name: "email", Usage: "Allow reading email metadata"},
			&cli.BoolFlag{Name: "notifications", Usage: "Allow proactive reminders"},
			&cli.BoolFlag{Name: "complete-onboarding", Usage: "Mark onboarding as finished and reset the transcript"},
		},
		Action: func(c *cli.Context) error {
			perms := agent.Permissions{
				Agenda:        c.Bool("agenda"),
				Todos:         c.Bool("todos"),
				Email:         c.Bool("email"),
				Notifications: c.Bool("notifications"),
			}

			var (
				output *ops.SettingsOutput
				err    error
			)
			if c.Bool("complete-onboarding") {
				output, err = ops.CompleteOnboarding(c.Context, deps, ops.CompleteOnboardingInput{Permissions: perms})
			} else {
				output, err = ops.SetPermissions(c.Context, deps, ops.SetPermissionsInput{Permissions: perms})
			}
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// languageCmd creates the language command.
func languageCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:      "language",
		Usage:     "Set the conversation language (en-US, pt-BR)",
		ArgsUsage: "<code>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("language code is required"))
			}
			output, err := ops.SetLanguage(c.Context, deps, ops.SetLanguageInput{Code: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show or clear the conversation transcript",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "clear", Usage: "Clear the transcript"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("clear") {
				output, err := ops.ClearHistory(c.Context, deps)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.History(c.Context, deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// uiCmd creates the ui command.
func uiCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Start the web chat UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Usage: "Port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			bind := deps.Cfg.UIBind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := deps.Cfg.UIPort
			if c.IsSet("port") {
				port = c.Int("port")
			}

			srv := web.NewServer(deps, Version, bind, port)
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if aErr, ok := err.(*errors.AideError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", aErr.Code, aErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
