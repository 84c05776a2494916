// Command token-generator mints a bearer token accepted by the mutating card
// routes. The signing secret and issuer come from the same configuration the
// server loads, so CARDS_AUTH_JWT_SECRET must be set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phrazzld/cards-api/internal/config"
	"github.com/phrazzld/cards-api/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "", "principal recorded as the actor on card writes (required)")
	lifetime := flag.Duration("lifetime", 0, "override the configured token lifetime, e.g. 30m")
	flag.Parse()

	if err := run(context.Background(), os.Stdout, *subject, *lifetime); err != nil {
		fmt.Fprintf(os.Stderr, "token-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, subject string, lifetime time.Duration) error {
	if subject == "" {
		return errors.New("-subject is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.Auth.Enabled() {
		return errors.New("auth.jwt_secret is not configured")
	}

	return mint(ctx, out, cfg.Auth, subject, lifetime)
}

// mint writes a signed token for subject to out.
func mint(ctx context.Context, out io.Writer, authCfg config.AuthConfig, subject string, lifetime time.Duration) error {
	if lifetime > 0 {
		minutes := int(lifetime / time.Minute)
		if minutes < 1 {
			return fmt.Errorf("lifetime %s is shorter than one minute", lifetime)
		}
		authCfg.TokenLifetimeMinutes = minutes
	}

	svc, err := auth.NewJWTService(authCfg)
	if err != nil {
		return err
	}

	token, err := svc.GenerateToken(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
