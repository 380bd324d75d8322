package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brdstudio/internal/domain"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored BRD sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := ctx.apiClient()
			if err != nil {
				return err
			}
			brds, err := api.ListBRDs(cmd.Context())
			if err != nil {
				return err
			}
			if len(brds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No BRDs yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistoryTable(brds))
			return nil
		},
	}
	return cmd
}

func renderHistoryTable(brds []domain.BRD) string {
	rows := make([][]string, 0, len(brds))
	for _, b := range brds {
		final := ""
		if b.FinalDocPath != "" {
			final = "yes"
		}
		rows = append(rows, []string{
			b.ID,
			b.Title,
			string(b.Language),
			final,
			b.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return renderTable(
		[]string{"ID", "Title", "Lang", "Final", "Created"},
		rows,
	)
}
