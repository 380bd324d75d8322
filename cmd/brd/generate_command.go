package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var notes string
	var samplePaths []string
	var extractPDFText bool

	cmd := &cobra.Command{
		Use:   "generate <media-file> [media-file...]",
		Short: "Transcribe recordings and generate a BRD from them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.newController()
			if err != nil {
				return err
			}
			ctrl.ExtractPDFText = extractPDFText

			for _, path := range args {
				media, err := loadMediaFile(path)
				if err != nil {
					return err
				}
				ctrl.AddMedia(media)
			}
			for _, path := range samplePaths {
				sample, err := loadSampleFile(path)
				if err != nil {
					return err
				}
				ctrl.AddSample(sample)
			}
			ctrl.SetNotes(notes)

			fmt.Fprintln(cmd.ErrOrStderr(), "Transcribing...")
			if err := ctrl.Transcribe(cmd.Context()); err != nil {
				return err
			}
			if err := ctrl.NextToSetup(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Generating BRD...")
			if err := ctrl.Generate(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ctrl.Content())
			fmt.Fprintf(cmd.ErrOrStderr(), "\nSaved as BRD %s\n", ctrl.BRDID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Additional free-text notes for the generation step")
	cmd.Flags().StringArrayVarP(&samplePaths, "sample", "s", nil, "Sample BRD document to imitate (repeatable)")
	cmd.Flags().BoolVar(&extractPDFText, "extract-pdf-text", false, "Send PDF samples as extracted text instead of inline binary")
	return cmd
}
