package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixolus/toggl-go/internal/config"
	"github.com/pixolus/toggl-go/toggl"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "Path to a TOML config file (default: ~/.config/toggl-cli/config.toml)")
	workspace := flag.Int64("workspace", 0, "Workspace id (overrides config)")
	project := flag.Int64("project", 0, "Project id for start")
	description := flag.String("description", "", "Time entry description for start")
	tag := flag.String("tag", "", "Single tag for start")
	since := flag.Duration("since", 24*time.Hour, "Look-back window for list")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	// Logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *workspace == 0 {
		*workspace = cfg.Toggl.WorkspaceID
	}

	// Session
	sess, err := toggl.NewSession(toggl.Config{
		BaseURL:   cfg.Toggl.BaseURL,
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.Toggl.UserAgent,
		CABundle:  cfg.Toggl.CABundle,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to initialize session", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Toggl.APIToken != "" {
		sess.SetAPIKey(cfg.Toggl.APIToken)
	} else {
		sess.SetAuthCredentials(cfg.Toggl.Email, cfg.Toggl.Password)
	}

	// Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "current"
	}

	var result any
	switch cmd {
	case "start":
		opts := &toggl.StartOptions{Tag: *tag}
		if *project != 0 {
			opts.ProjectID = *project
		}
		result, err = sess.StartTimeEntry(ctx, *description, requireWorkspace(logger, *workspace), opts)
	case "stop":
		result, err = sess.StopTimeEntry(ctx, nil)
	case "current":
		result, err = sess.CurrentTimeEntry(ctx)
	case "list":
		now := time.Now()
		result, err = sess.ListTimeEntries(ctx, requireWorkspace(logger, *workspace), &toggl.ListEntriesOptions{
			StartDate: now.Add(-*since),
			EndDate:   now,
		})
	case "workspaces":
		result, err = sess.GetWorkspaces(ctx)
	case "projects":
		if *workspace != 0 {
			result, err = sess.GetWorkspaceProjects(ctx, *workspace)
		} else {
			result, err = sess.GetProjects(ctx)
		}
	case "clients":
		result, err = sess.GetClients(ctx)
	default:
		logger.Error("unknown command", slog.String("command", cmd))
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", slog.String("command", cmd), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if result == nil {
		fmt.Println("null")
		return
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("failed to encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// requireWorkspace exits when no workspace id is configured; commands that
// write need one.
func requireWorkspace(log *slog.Logger, wid int64) int64 {
	if wid == 0 {
		log.Error("a workspace id is required: set -workspace or TOGGL_WORKSPACE_ID")
		os.Exit(1)
	}
	return wid
}
