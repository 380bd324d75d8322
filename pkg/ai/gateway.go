package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"brdstudio/internal/domain"
)

// Fallback strings substituted by callers when a call succeeds but the model
// returns no usable text.
const (
	FallbackTranscription = "No transcription generated."
	FallbackGeneration    = "Failed to generate BRD."
	FallbackChatReply     = "I'm sorry, I couldn't generate a response."
)

// Result is the outcome of a successful gateway call. Empty marks a call
// that reached the model but produced no text, which is distinct from a
// transport or auth error (those are returned as error).
type Result struct {
	Text  string
	Empty bool
}

func newResult(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Empty: true}
	}
	return Result{Text: text}
}

// Sample is one user-supplied reference document. Text carries extracted
// plain text; Data carries raw bytes sent inline (PDF only).
type Sample struct {
	Name     string
	MimeType string
	Text     string
	Data     []byte
}

// TranscribeMedia sends one media payload for verbatim transcription.
func (c *Client) TranscribeMedia(ctx context.Context, data []byte, mimeType string, lang domain.Language) (Result, error) {
	contents := []content{{
		Role: "user",
		Parts: []part{
			{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
			{Text: transcribePrompt(lang)},
		},
	}}
	text, err := c.generate(ctx, contents, "")
	if err != nil {
		return Result{}, err
	}
	return newResult(text), nil
}

// GenerateBRD produces a full document from a transcription, free-text
// notes, and optional sample documents whose style the model must imitate.
func (c *Client) GenerateBRD(ctx context.Context, transcription, notes string, samples []Sample, lang domain.Language) (Result, error) {
	parts := []part{{
		Text: fmt.Sprintf("%s\n\nTranscription:\n%s\n\nAdditional Notes:\n%s", generateSystem(lang), transcription, notes),
	}}
	for _, s := range samples {
		switch {
		case s.Text != "":
			parts = append(parts, part{Text: fmt.Sprintf("Sample Document (%s):\n%s", s.Name, s.Text)})
		case len(s.Data) > 0 && s.MimeType == "application/pdf":
			parts = append(parts, part{InlineData: &inlineData{
				MimeType: s.MimeType,
				Data:     base64.StdEncoding.EncodeToString(s.Data),
			}})
		}
	}
	text, err := c.generate(ctx, []content{{Role: "user", Parts: parts}}, "")
	if err != nil {
		return Result{}, err
	}
	return newResult(text), nil
}

// RefineBRD rewrites the whole document according to a natural-language
// command. On an empty model response callers keep the current content, so
// refinement degrades to a no-op rather than an error.
func (c *Client) RefineBRD(ctx context.Context, current, command string, lang domain.Language) (Result, error) {
	contents := []content{{
		Role: "user",
		Parts: []part{{
			Text: fmt.Sprintf("Current document:\n\n%s\n\nInstruction: %s", current, command),
		}},
	}}
	text, err := c.generate(ctx, contents, refineSystem(lang))
	if err != nil {
		return Result{}, err
	}
	return newResult(text), nil
}

// Chat answers one follow-up question, replaying the full prior conversation
// and grounding the model in the current BRD content.
func (c *Client) Chat(ctx context.Context, brdContent string, history []domain.ChatMessage, message string, lang domain.Language) (Result, error) {
	contents := make([]content, 0, len(history)+2)
	contents = append(contents, content{
		Role: "user",
		Parts: []part{{
			Text: fmt.Sprintf("Context: This is a chat about a Business Requirements Document (BRD). Here is the BRD content:\n\n%s", brdContent),
		}},
	})
	for _, msg := range history {
		contents = append(contents, content{
			Role:  string(msg.Role),
			Parts: []part{{Text: msg.Content}},
		})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: message}}})
	text, err := c.generate(ctx, contents, chatSystem(lang))
	if err != nil {
		return Result{}, err
	}
	return newResult(text), nil
}
