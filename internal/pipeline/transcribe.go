package pipeline

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"brdstudio/internal/domain"
	"brdstudio/pkg/ai"
)

// sectionSeparator joins per-file transcription sections.
const sectionSeparator = "\n\n---\n\n"

// transcribeAll fans out one gateway call per file and joins the results in
// the original file order. Completion order never affects output order: each
// goroutine writes only its own slot.
func transcribeAll(ctx context.Context, gw Gateway, files []MediaFile, lang domain.Language) (string, error) {
	results := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			res, err := gw.TranscribeMedia(gctx, f.Data, f.MimeType, lang)
			if err != nil {
				return fmt.Errorf("transcribe %s: %w", f.Name, err)
			}
			text := res.Text
			if res.Empty {
				text = ai.FallbackTranscription
			}
			results[i] = fmt.Sprintf("### Transcription for: %s\n\n%s", f.Name, text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(results, sectionSeparator), nil
}
