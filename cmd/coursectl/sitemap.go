package main

import (
	"strings"

	publicService "coursetree/internal/service/public"

	"github.com/spf13/cobra"
)

func newSitemapCommand(env *environment) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Print the public sitemap XML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, logger, err := env.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			base := cfg.PublicBaseURL
			if cmd.Flags().Changed("base-url") && baseURL != "" {
				base = strings.TrimRight(baseURL, "/")
			}

			entries, err := publicService.NewPublicService(store, base, logger).Sitemap(cmd.Context())
			if err != nil {
				return err
			}
			body, err := publicService.RenderSitemap(entries)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(body, '\n'))
			return err
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "site URL prefix (default PUBLIC_BASE_URL)")
	return cmd
}
