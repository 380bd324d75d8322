package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRefineCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refine <brd-id> <command...>",
		Short: "Rewrite a stored BRD from a natural-language command",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			command := strings.Join(args[1:], " ")

			api, err := ctx.apiClient()
			if err != nil {
				return err
			}
			brd, err := api.GetBRD(cmd.Context(), id)
			if err != nil {
				return err
			}

			ctrl, err := ctx.newController()
			if err != nil {
				return err
			}
			ctrl.Resume(brd)

			before := ctrl.Content()
			if err := ctrl.Refine(cmd.Context(), command); err != nil {
				return err
			}
			if ctrl.Content() == before {
				fmt.Fprintln(cmd.ErrOrStderr(), "Model returned no changes; document left as-is.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ctrl.Content())
			return nil
		},
	}
	return cmd
}
