package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aide-app/aide/internal/config"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/logging"
	"github.com/aide-app/aide/internal/mcp"
	"github.com/aide-app/aide/internal/model"
	"github.com/aide-app/aide/internal/ops"
	"github.com/aide-app/aide/internal/provider"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"chat": true, "welcome": true, "briefing": true, "reminder": true,
	"agenda": true, "connect": true, "disconnect": true,
	"settings": true, "permissions": true, "language": true,
	"history": true, "ui": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
    ___    _     __
   / _ |  (_)___/ /__
  / __ | / / _  / -_)
 /_/ |_|/_/\_,_/\__/

  Personal AI agent

  Usage: aide <command> [options]
         aide --help

  MCP server mode requires piped input.`)
}

// buildDeps wires the operation dependencies. The model is left nil when no
// API key is set; turn operations then report MODEL_UNAVAILABLE.
func buildDeps(database *sql.DB, cfg *config.Config) *ops.Deps {
	log := logging.New("aide")

	deps := &ops.Deps{
		DB:       database,
		Cfg:      cfg,
		Provider: provider.NewMock(),
		Log:      log,
	}

	if key := os.Getenv(cfg.APIKeyEnv); key != "" {
		timeout := time.Duration(cfg.RequestTimeoutSecs) * time.Second
		gen, err := model.NewGemini(context.Background(), key, cfg.Model, timeout)
		if err != nil {
			log.Warn().Err(err).Msg("model client init failed, conversation disabled")
		} else {
			deps.Model = gen
		}
	} else {
		log.Debug().Str("env", cfg.APIKeyEnv).Msg("no API key set, conversation disabled")
	}

	return deps
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".aide")

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	db.ConfigurePool(database, cfg)

	deps := buildDeps(database, cfg)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(deps)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'aide --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(mcp.NewHandlers(deps), Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
