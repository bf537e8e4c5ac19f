// Package main runs the curriculum planner HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/planner/internal/config"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/redact"
)

// options holds the command-line flags.
type options struct {
	configPath string
	migrate    string
}

func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (default: ./config.yaml when present)")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command ("+strings.Join(migrationCommands(), ", ")+") and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("planner server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration and either applies a migration command or serves
// the API until ctx is cancelled.
func run(ctx context.Context, opts options) error {
	cfg, err := loadAppConfig(opts.configPath)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_backend", cfg.Storage.Backend,
		"auth_enabled", cfg.Auth.AuthEnabled())

	if opts.migrate != "" {
		return runMigrations(ctx, cfg, opts.migrate, log)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}

func loadAppConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
