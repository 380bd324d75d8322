package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "transcribe <media-file> [media-file...]",
		Short: "Transcribe audio/video recordings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.newController()
			if err != nil {
				return err
			}
			for _, path := range args {
				media, err := loadMediaFile(path)
				if err != nil {
					return err
				}
				ctrl.AddMedia(media)
			}
			if err := ctrl.Transcribe(cmd.Context()); err != nil {
				return err
			}
			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(ctrl.Transcription()), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Transcription written to %s\n", outPath)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ctrl.Transcription())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the transcription to a file")
	return cmd
}
