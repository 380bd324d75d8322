package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"

	"brdstudio/pkg/ai"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// parseSamples converts queued sample files into gateway parts, in parallel.
// A file that cannot be parsed is dropped rather than failing the batch.
func parseSamples(ctx context.Context, files []SampleFile, extractPDFText bool) []ai.Sample {
	parsed := make([]*ai.Sample, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		i, f := i, f
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if s, err := parseSample(f, extractPDFText); err == nil {
				parsed[i] = s
			}
		}()
	}
	wg.Wait()

	samples := make([]ai.Sample, 0, len(files))
	for _, s := range parsed {
		if s != nil {
			samples = append(samples, *s)
		}
	}
	return samples
}

func parseSample(f SampleFile, extractPDFText bool) (*ai.Sample, error) {
	switch sampleKind(f) {
	case mimePDF:
		if extractPDFText {
			text, err := extractPDF(f.Data)
			if err != nil {
				return nil, err
			}
			return &ai.Sample{Name: f.Name, MimeType: mimePDF, Text: text}, nil
		}
		return &ai.Sample{Name: f.Name, MimeType: mimePDF, Data: f.Data}, nil
	case mimeDocx:
		text, err := extractDocx(f.Data)
		if err != nil {
			return nil, err
		}
		return &ai.Sample{Name: f.Name, MimeType: f.MimeType, Text: text}, nil
	case "text/html":
		text, err := extractHTML(f.Data)
		if err != nil {
			return nil, err
		}
		return &ai.Sample{Name: f.Name, MimeType: f.MimeType, Text: text}, nil
	default:
		if !utf8.Valid(f.Data) {
			return nil, fmt.Errorf("%s: not a text file", f.Name)
		}
		return &ai.Sample{Name: f.Name, MimeType: "text/plain", Text: string(f.Data)}, nil
	}
}

func sampleKind(f SampleFile) string {
	switch strings.ToLower(filepath.Ext(f.Name)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDocx
	case ".html", ".htm":
		return "text/html"
	}
	switch f.MimeType {
	case mimePDF, mimeDocx, "text/html":
		return f.MimeType
	}
	return "text/plain"
}

// extractPDF pulls plain text out of a PDF, page by page. Pages that fail to
// decode are skipped, matching how the ingest side treats damaged pages.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("no text extracted from pdf")
	}
	return result, nil
}

// extractDocx reads word/document.xml from the docx archive and collects the
// character data, one line per paragraph.
func extractDocx(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	var doc io.ReadCloser
	for _, file := range reader.File {
		if file.Name == "word/document.xml" {
			doc, err = file.Open()
			if err != nil {
				return "", fmt.Errorf("open document.xml: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}
	defer doc.Close()

	decoder := xml.NewDecoder(doc)
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteString("\n")
			}
		}
	}
	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("no text extracted from docx")
	}
	return result, nil
}

// extractHTML collects the visible text of an HTML document.
func extractHTML(data []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("no text extracted from html")
	}
	return result, nil
}
