package pipeline

import (
	"context"
	"fmt"
	"strings"

	"brdstudio/internal/domain"
	"brdstudio/pkg/ai"
)

// LoadChat fetches the full stored conversation for the bound BRD into the
// in-memory log. Called once when the chat panel opens.
func (c *Controller) LoadChat(ctx context.Context) error {
	if c.brdID == "" {
		return fmt.Errorf("no BRD session bound")
	}
	msgs, err := c.api.ListChat(ctx, c.brdID)
	if err != nil {
		return fmt.Errorf("load chat: %w", err)
	}
	c.chatLog = msgs
	return nil
}

// SendChat persists the user turn, replays the prior conversation to the
// gateway with the current BRD content as grounding, and persists the model
// reply. Returns the reply text.
func (c *Controller) SendChat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message required")
	}
	if c.brdID == "" {
		return "", fmt.Errorf("no BRD session bound")
	}

	if _, err := c.api.AppendChat(ctx, c.brdID, domain.RoleUser, message); err != nil {
		return "", fmt.Errorf("save user message: %w", err)
	}
	history := c.chatLog
	c.chatLog = append(c.chatLog, domain.ChatMessage{BRDID: c.brdID, Role: domain.RoleUser, Content: message})

	res, err := c.gateway.Chat(ctx, c.brdContent, history, message, c.language)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	reply := res.Text
	if res.Empty {
		reply = ai.FallbackChatReply
	}

	if _, err := c.api.AppendChat(ctx, c.brdID, domain.RoleModel, reply); err != nil {
		return "", fmt.Errorf("save model reply: %w", err)
	}
	c.chatLog = append(c.chatLog, domain.ChatMessage{BRDID: c.brdID, Role: domain.RoleModel, Content: reply})
	return reply, nil
}
