package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newFinalCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "final <brd-id> <file>",
		Short: "Upload the approved final document for a BRD",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, path := args[0], args[1]

			api, err := ctx.apiClient()
			if err != nil {
				return err
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer file.Close()

			stored, err := api.UploadFinal(cmd.Context(), id, filepath.Base(path), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Final document stored at %s\n", stored)
			return nil
		},
	}
	return cmd
}
