package main

import (
	"errors"
	"fmt"

	"coursetree/internal/auth"

	"github.com/spf13/cobra"
)

func newTokenCommand(env *environment) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed admin bearer token for scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.config()
			if cfg.AdminJWTSecret == "" {
				return errors.New("ADMIN_JWT_SECRET is not set")
			}

			issuer, err := auth.NewTokenIssuer(cfg.AdminJWTSecret, cfg.AdminTokenTTL, env.logger())
			if err != nil {
				return err
			}
			token, err := issuer.Issue(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token.Token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", token.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	return cmd
}
