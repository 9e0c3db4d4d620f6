// Command token-generator mints signed access tokens for local development
// and manual testing of the tasks-api.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type options struct {
	subject         string
	scopes          string
	lifetimeMinutes int
	useConfig       bool
	secret          string
	issuer          string
	audience        string
}

func newCommand(out io.Writer) *cobra.Command {
	opts := options{
		secret: os.Getenv("TASKS_AUTH_JWT_SECRET"),
	}

	cmd := &cobra.Command{
		Use:           "token-generator",
		Short:         "Mint an HS256 access token accepted by tasks-api",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			authCfg, err := opts.authConfig()
			if err != nil {
				return err
			}

			svc, err := auth.NewJWTService(authCfg)
			if err != nil {
				return err
			}

			token, err := svc.GenerateToken(context.Background(), opts.subject, splitScopes(opts.scopes))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, token)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.subject, "subject", "dev-client", "token subject (sub claim)")
	f.StringVar(&opts.scopes, "scopes", "message:read,message:write", "comma-separated scopes")
	f.IntVar(&opts.lifetimeMinutes, "lifetime", 60, "token lifetime in minutes")
	f.BoolVar(&opts.useConfig, "from-config", false, "read secret, issuer and audience from the server configuration")
	f.StringVar(&opts.secret, "secret", opts.secret, "signing secret (env TASKS_AUTH_JWT_SECRET)")
	f.StringVar(&opts.issuer, "issuer", "", "iss claim")
	f.StringVar(&opts.audience, "audience", "", "aud claim")

	return cmd
}

// authConfig returns the signing settings, taken from the server
// configuration when --from-config is set.
func (o options) authConfig() (config.AuthConfig, error) {
	cfg := config.AuthConfig{
		JWTSecret:            o.secret,
		Issuer:               o.issuer,
		Audience:             o.audience,
		TokenLifetimeMinutes: o.lifetimeMinutes,
	}
	if !o.useConfig {
		return cfg, nil
	}

	loaded, err := config.Load()
	if err != nil {
		return config.AuthConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	loaded.Auth.TokenLifetimeMinutes = o.lifetimeMinutes
	return loaded.Auth, nil
}

func splitScopes(s string) []string {
	var scopes []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			scopes = append(scopes, part)
		}
	}
	return scopes
}
