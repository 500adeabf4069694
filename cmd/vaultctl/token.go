package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/server/auth"
	"github.com/spf13/cobra"
)

// secretEnv is consulted when --secret is not given.
const secretEnv = "SAFETRACE_SECRET"

func newTokenCmd() *cobra.Command {
	var (
		user   string
		secret string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the vault server",
		Long: `Signs an HS256 access token for --user with the server's secret key.
Meant for development, where no identity provider hands out tokens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv(secretEnv)
			}
			if secret == "" {
				return fmt.Errorf("secret is required (--secret or %s)", secretEnv)
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive, got %s", ttl)
			}

			tok, err := auth.GenerateToken(user, []byte(secret), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "user id the token is issued for")
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "HMAC secret shared with the server")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
