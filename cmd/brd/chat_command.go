package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <brd-id>",
		Short: "Ask follow-up questions about a stored BRD",
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

			ctrl, err := ctx.newController()
			if err != nil {
				return err
			}
			ctrl.Resume(brd)
			if err := ctrl.LoadChat(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, msg := range ctrl.Chat() {
				fmt.Fprintf(out, "[%s] %s\n", msg.Role, msg.Content)
			}
			fmt.Fprintf(out, "Chatting about %q. Empty line to quit.\n", brd.Title)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					break
				}
				reply, err := ctrl.SendChat(cmd.Context(), line)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "[model] %s\n", reply)
			}
			return scanner.Err()
		},
	}
	return cmd
}
