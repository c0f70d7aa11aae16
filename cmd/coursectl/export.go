package main

import (
	"fmt"
	"os"

	"coursetree/internal/domain/models/content"

	"github.com/spf13/cobra"
)

func newExportCommand(env *environment) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored document as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			encode, err := encoderFor(format)
			if err != nil {
				return err
			}

			store, _, _, err := env.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			doc, rev, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			body, err := encode(doc)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(out, body, 0644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d courses to %s (revision %s)\n", len(doc.Courses), out, rev)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func encoderFor(format string) (func(*content.Document) ([]byte, error), error) {
	switch format {
	case "json":
		return content.EncodeJSON, nil
	case "yaml", "yml":
		return content.EncodeYAML, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}
