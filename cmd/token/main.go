// Package main prints a signed bearer token for the plan owner. The secret
// and lifetime come from the same configuration as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/planner/internal/config"
	"github.com/phrazzld/planner/internal/service/auth"
)

// ErrAuthDisabled is returned when no signing secret is configured.
var ErrAuthDisabled = errors.New("auth.jwt_secret is not configured; the server accepts unauthenticated requests")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a config file (default: ./config.yaml when present)")
	subject := fs.String("subject", auth.DefaultSubject, "token subject")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	token, err := issue(ctx, cfg.Auth, *subject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, token)
	return err
}

// issue signs a token for subject with the configured secret.
func issue(ctx context.Context, cfg config.AuthConfig, subject string) (string, error) {
	if !cfg.AuthEnabled() {
		return "", ErrAuthDisabled
	}

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	return svc.GenerateToken(ctx, subject)
}
