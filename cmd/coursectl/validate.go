package main

import (
	"fmt"

	"coursetree/internal/domain/models/content"
	"coursetree/internal/seed"
	contentService "coursetree/internal/service/content"

	"github.com/spf13/cobra"
)

func newValidateCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a file, or the stored document, for invalid fields and duplicates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc *content.Document
			source := ""

			if len(args) == 1 {
				loaded, err := seed.LoadFile(args[0])
				if err != nil {
					return err
				}
				doc, source = loaded, args[0]
			} else {
				store, cfg, _, err := env.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer store.Close()

				loaded, _, err := store.Load(cmd.Context())
				if err != nil {
					return err
				}
				doc, source = loaded, cfg.StoreDriver+" store"
			}

			problems := contentService.DocumentProblems(doc)
			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(out, "%s: ok (%d courses)\n", source, len(doc.Courses))
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(out, "%s: %s\n", source, p)
			}
			return fmt.Errorf("%d problems found", len(problems))
		},
	}
}
