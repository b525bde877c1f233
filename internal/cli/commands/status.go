package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"Vitrin/internal/cli/api"
	"Vitrin/internal/cli/auth"
	"Vitrin/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Ask the server who the current token belongs to" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withClient(cfg, func(c *api.Client) error {
		u, err := c.Me(ctx)
		if err != nil {
			var se *api.StatusError
			if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
				fmt.Fprintln(Out, "Status: not authenticated")
				return nil
			}
			return err
		}
		fmt.Fprintf(Out, "Status: authenticated as %s (id %d)\n", u.Login, u.ID)
		return nil
	})
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the locally stored token's claims" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withClient(cfg, func(c *api.Client) error {
		holder := c.Auth()
		holder.HydrateToken()
		if !holder.IsAuthenticated() {
			fmt.Fprintln(Out, "Not logged in")
			return nil
		}
		token, _ := holder.Token()
		claims := auth.Inspect(token)
		if claims.Opaque {
			fmt.Fprintln(Out, "Logged in (opaque token)")
			return nil
		}
		fmt.Fprintf(Out, "Logged in as %s (subject %s)\n", claims.Login, claims.Subject)
		if claims.ExpiresAt != nil {
			fmt.Fprintf(Out, "Token expires at %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
		}
		return nil
	})
}

func init() {
	RegisterCmd(statusCmd{})
	RegisterCmd(whoamiCmd{})
}
