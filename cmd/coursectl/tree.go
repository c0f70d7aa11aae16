package main

import (
	"fmt"
	"io"
	"strings"

	"coursetree/internal/domain/models/content"
	contentService "coursetree/internal/service/content"

	"github.com/spf13/cobra"
)

func newTreeCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <courseId>",
		Short: "Print the content outline of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, logger, err := env.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			tree, _, err := contentService.NewNodeService(store, logger).GetTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOutline(cmd.OutOrStdout(), tree, 0)
			return nil
		},
	}
}

// printOutline writes one line per node: order, id, url param and hidden/inactive markers
func printOutline(w io.Writer, nodes []content.ContentNode, depth int) {
	for _, n := range nodes {
		var flags []string
		if !n.Active {
			flags = append(flags, "inactive")
		}
		if !n.Visible {
			flags = append(flags, "hidden")
		}
		if n.VideoURL != "" {
			flags = append(flags, "video")
		}

		line := fmt.Sprintf("%s%d. %s (/%s) %s", strings.Repeat("  ", depth), n.Order, n.ID, n.URLParam, n.Title)
		if len(flags) > 0 {
			line += " [" + strings.Join(flags, ",") + "]"
		}
		fmt.Fprintln(w, line)
		printOutline(w, n.Children, depth+1)
	}
}
