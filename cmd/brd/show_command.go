package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var showTranscription bool

	cmd := &cobra.Command{
		Use:   "show <brd-id>",
		Short: "Print a stored BRD document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := ctx.apiClient()
			if err != nil {
				return err
			}
			brd, err := api.GetBRD(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if showTranscription {
				fmt.Fprintln(cmd.OutOrStdout(), brd.Transcription)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), brd.Content)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showTranscription, "transcription", "t", false, "Print the source transcription instead of the document")
	return cmd
}
