package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"brdstudio/internal/domain"
	"brdstudio/pkg/ai"
)

const defaultTitle = "Untitled BRD"

// Step is one state of the BRD wizard.
type Step string

const (
	StepTranscribe Step = "transcribe"
	StepBRDSetup   Step = "brd-setup"
	StepBRDResult  Step = "brd-result"
)

// Gateway is the subset of AI operations the controller drives.
type Gateway interface {
	TranscribeMedia(ctx context.Context, data []byte, mimeType string, lang domain.Language) (ai.Result, error)
	GenerateBRD(ctx context.Context, transcription, notes string, samples []ai.Sample, lang domain.Language) (ai.Result, error)
	RefineBRD(ctx context.Context, current, command string, lang domain.Language) (ai.Result, error)
	Chat(ctx context.Context, brdContent string, history []domain.ChatMessage, message string, lang domain.Language) (ai.Result, error)
}

// API is the server surface the controller persists through. The controller
// never writes the store directly; all state reaches disk via these calls.
type API interface {
	ListBRDs(ctx context.Context) ([]domain.BRD, error)
	GetBRD(ctx context.Context, id string) (domain.BRD, error)
	CreateBRD(ctx context.Context, b domain.BRD) (string, error)
	UpdateContent(ctx context.Context, id, content string) error
	UploadFinal(ctx context.Context, id, filename string, r io.Reader) (string, error)
	ListChat(ctx context.Context, brdID string) ([]domain.ChatMessage, error)
	AppendChat(ctx context.Context, brdID string, role domain.ChatRole, content string) (string, error)
}

// MediaFile is one source recording queued for transcription.
type MediaFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// SampleFile is one reference document queued for parsing.
type SampleFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// Controller holds the in-memory wizard state: which step is showing and
// everything collected so far. It is not safe for concurrent use; each
// session owns one controller.
type Controller struct {
	gateway Gateway
	api     API

	step          Step
	language      domain.Language
	media         []MediaFile
	transcription string
	extraNotes    string
	samples       []SampleFile
	brdContent    string
	brdID         string
	chatLog       []domain.ChatMessage
	history       []domain.BRD

	// ExtractPDFText sends PDF samples as extracted text instead of inline
	// binary parts.
	ExtractPDFText bool
}

// New returns a controller at the transcribe step.
func New(gateway Gateway, api API) *Controller {
	return &Controller{
		gateway:  gateway,
		api:      api,
		step:     StepTranscribe,
		language: domain.LanguageEnglish,
	}
}

func (c *Controller) Step() Step                 { return c.step }
func (c *Controller) Language() domain.Language  { return c.language }
func (c *Controller) Transcription() string      { return c.transcription }
func (c *Controller) Content() string            { return c.brdContent }
func (c *Controller) BRDID() string              { return c.brdID }
func (c *Controller) History() []domain.BRD      { return c.history }
func (c *Controller) Chat() []domain.ChatMessage { return c.chatLog }

// SetLanguage chooses the prompt language for the session.
func (c *Controller) SetLanguage(lang domain.Language) {
	c.language = domain.ParseLanguage(string(lang))
}

// AddMedia queues a source recording.
func (c *Controller) AddMedia(f MediaFile) { c.media = append(c.media, f) }

// AddSample queues a reference document for the generation step.
func (c *Controller) AddSample(f SampleFile) { c.samples = append(c.samples, f) }

// SetNotes stores free-text context for the generation step.
func (c *Controller) SetNotes(notes string) { c.extraNotes = notes }

// Transcribe runs all queued media through the gateway in parallel and joins
// the results in file order. One failed file fails the whole batch.
func (c *Controller) Transcribe(ctx context.Context) error {
	if c.step != StepTranscribe {
		return fmt.Errorf("transcription only runs in the %s step", StepTranscribe)
	}
	if len(c.media) == 0 {
		return fmt.Errorf("no media files selected")
	}
	text, err := transcribeAll(ctx, c.gateway, c.media, c.language)
	if err != nil {
		return err
	}
	c.transcription = text
	return nil
}

// NextToSetup advances to the setup step once a transcription exists.
func (c *Controller) NextToSetup() error {
	if c.step != StepTranscribe {
		return fmt.Errorf("cannot advance to %s from %s", StepBRDSetup, c.step)
	}
	if c.transcription == "" {
		return fmt.Errorf("transcription required before BRD setup")
	}
	c.step = StepBRDSetup
	return nil
}

// Back steps the wizard one step towards transcribe.
func (c *Controller) Back() {
	switch c.step {
	case StepBRDResult:
		c.step = StepBRDSetup
	case StepBRDSetup:
		c.step = StepTranscribe
	}
}

// Generate parses the queued samples, asks the gateway for a document, and
// persists the session through the API. Entering the result step and
// creating the stored row happen together.
func (c *Controller) Generate(ctx context.Context) error {
	if c.step != StepBRDSetup {
		return fmt.Errorf("generation only runs in the %s step", StepBRDSetup)
	}
	if c.transcription == "" {
		return fmt.Errorf("transcription required")
	}
	samples := parseSamples(ctx, c.samples, c.ExtractPDFText)
	res, err := c.gateway.GenerateBRD(ctx, c.transcription, c.extraNotes, samples, c.language)
	if err != nil {
		return fmt.Errorf("generate BRD: %w", err)
	}
	content := res.Text
	if res.Empty {
		content = ai.FallbackGeneration
	}
	c.brdContent = content

	id, err := c.api.CreateBRD(ctx, domain.BRD{
		Title:         c.deriveTitle(),
		Content:       content,
		Transcription: c.transcription,
		ExtraNotes:    c.extraNotes,
		Language:      c.language,
	})
	if err != nil {
		return fmt.Errorf("save BRD: %w", err)
	}
	c.brdID = id
	c.step = StepBRDResult
	c.refreshHistory(ctx)
	return nil
}

// Refine rewrites the current document from a natural-language command. An
// empty model response leaves the content untouched.
func (c *Controller) Refine(ctx context.Context, command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("refine command required")
	}
	if c.brdContent == "" {
		return fmt.Errorf("no BRD content to refine")
	}
	res, err := c.gateway.RefineBRD(ctx, c.brdContent, command, c.language)
	if err != nil {
		return fmt.Errorf("refine BRD: %w", err)
	}
	if res.Empty {
		return nil
	}
	c.brdContent = res.Text
	if c.brdID != "" {
		if err := c.api.UpdateContent(ctx, c.brdID, c.brdContent); err != nil {
			return fmt.Errorf("persist refined BRD: %w", err)
		}
		c.refreshHistory(ctx)
	}
	return nil
}

// UploadFinal stores the approved document and records its path.
func (c *Controller) UploadFinal(ctx context.Context, filename string, r io.Reader) (string, error) {
	if c.brdID == "" {
		return "", fmt.Errorf("no BRD session bound")
	}
	path, err := c.api.UploadFinal(ctx, c.brdID, filename, r)
	if err != nil {
		return "", fmt.Errorf("upload final document: %w", err)
	}
	c.refreshHistory(ctx)
	return path, nil
}

// Reset clears all in-memory fields and returns to the transcribe step.
func (c *Controller) Reset() {
	c.step = StepTranscribe
	c.media = nil
	c.transcription = ""
	c.extraNotes = ""
	c.samples = nil
	c.brdContent = ""
	c.brdID = ""
	c.chatLog = nil
}

// Resume replaces the controller state with a stored session and jumps
// straight to the result step. Nothing from the previous session survives.
func (c *Controller) Resume(b domain.BRD) {
	c.Reset()
	c.brdID = b.ID
	c.brdContent = b.Content
	c.transcription = b.Transcription
	c.extraNotes = b.ExtraNotes
	c.language = domain.ParseLanguage(string(b.Language))
	c.step = StepBRDResult
}

// RefreshHistory reloads the stored session list.
func (c *Controller) RefreshHistory(ctx context.Context) error {
	items, err := c.api.ListBRDs(ctx)
	if err != nil {
		return fmt.Errorf("list BRDs: %w", err)
	}
	c.history = items
	return nil
}

// refreshHistory is the fire-and-forget variant used after persists, where
// a stale panel is acceptable but a failed persist is not.
func (c *Controller) refreshHistory(ctx context.Context) {
	_ = c.RefreshHistory(ctx)
}

func (c *Controller) deriveTitle() string {
	if len(c.media) == 0 {
		return defaultTitle
	}
	name := filepath.Base(c.media[0].Name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if strings.TrimSpace(name) == "" {
		return defaultTitle
	}
	return name
}
