package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var serverFlag string
	var langFlag string

	ctx := newCommandContext(&configFlag, &serverFlag, &langFlag)

	rootCmd := &cobra.Command{
		Use:           "brd",
		Short:         "Transcribe recordings and generate Business Requirements Documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "BRD API server URL")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Prompt language: en or ar")

	rootCmd.AddCommand(newTranscribeCommand(ctx))
	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newRefineCommand(ctx))
	rootCmd.AddCommand(newChatCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newFinalCommand(ctx))

	return rootCmd
}
