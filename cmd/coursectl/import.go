package main

import (
	"fmt"

	"coursetree/internal/domain/repositories"
	"coursetree/internal/seed"
	contentService "coursetree/internal/service/content"

	"github.com/spf13/cobra"
)

func newImportCommand(env *environment) *cobra.Command {
	var ifMatch string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored document with a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			store, _, logger, err := env.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			svc := contentService.NewDocumentService(store, logger)
			stored, rev, err := svc.ReplaceDocument(cmd.Context(), doc, repositories.Revision(ifMatch))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d courses (revision %s)\n", len(stored.Courses), rev)
			return nil
		},
	}

	cmd.Flags().StringVar(&ifMatch, "if-match", "", "only replace when the stored revision matches")
	return cmd
}
