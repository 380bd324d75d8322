package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brdstudio/internal/domain"
	"brdstudio/internal/server"
	"brdstudio/internal/storage"
	"brdstudio/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	finals, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	srv := httptest.NewServer(server.New(server.Config{
		Store:  store.NewMemoryStore(),
		Finals: finals,
	}).Router())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestCreateGetAndListBRD(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	id, err := c.CreateBRD(ctx, domain.BRD{
		Title:         "Portal",
		Content:       "# Portal BRD",
		Transcription: "notes from the call",
		ExtraNotes:    "q3 launch",
		Language:      domain.LanguageArabic,
	})
	if err != nil {
		t.Fatalf("CreateBRD: %v", err)
	}
	if id == "" {
		t.Fatal("expected id")
	}

	got, err := c.GetBRD(ctx, id)
	if err != nil {
		t.Fatalf("GetBRD: %v", err)
	}
	if got.Title != "Portal" || got.Content != "# Portal BRD" || got.Language != domain.LanguageArabic {
		t.Fatalf("round trip: %+v", got)
	}

	brds, err := c.ListBRDs(ctx)
	if err != nil {
		t.Fatalf("ListBRDs: %v", err)
	}
	if len(brds) != 1 || brds[0].ID != id {
		t.Fatalf("list: %+v", brds)
	}
}

func TestGetBRDNotFoundReturnsAPIError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetBRD(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "BRD not found" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestUpdateContent(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	id, err := c.CreateBRD(ctx, domain.BRD{Title: "x", Content: "v1"})
	if err != nil {
		t.Fatalf("CreateBRD: %v", err)
	}

	if err := c.UpdateContent(ctx, id, "v2"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	got, _ := c.GetBRD(ctx, id)
	if got.Content != "v2" {
		t.Fatalf("content = %q", got.Content)
	}

	err = c.UpdateContent(ctx, "missing", "v2")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
}

func TestUploadFinal(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	id, err := c.CreateBRD(ctx, domain.BRD{Title: "x"})
	if err != nil {
		t.Fatalf("CreateBRD: %v", err)
	}

	path, err := c.UploadFinal(ctx, id, "approved.pdf", strings.NewReader("signed off"))
	if err != nil {
		t.Fatalf("UploadFinal: %v", err)
	}
	if !strings.HasSuffix(path, "-approved.pdf") {
		t.Fatalf("path = %q", path)
	}
	got, _ := c.GetBRD(ctx, id)
	if got.FinalDocPath != path {
		t.Fatalf("final_doc_path = %q", got.FinalDocPath)
	}
}

func TestChatRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	id, err := c.CreateBRD(ctx, domain.BRD{Title: "x"})
	if err != nil {
		t.Fatalf("CreateBRD: %v", err)
	}

	if _, err := c.AppendChat(ctx, id, domain.RoleUser, "first question"); err != nil {
		t.Fatalf("AppendChat: %v", err)
	}
	if _, err := c.AppendChat(ctx, id, domain.RoleModel, "first answer"); err != nil {
		t.Fatalf("AppendChat: %v", err)
	}

	msgs, err := c.ListChat(ctx, id)
	if err != nil {
		t.Fatalf("ListChat: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Content != "first question" || msgs[1].Role != domain.RoleModel {
		t.Fatalf("chat: %+v", msgs)
	}
}

func TestAppendChatRejectsBadRole(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	id, _ := c.CreateBRD(ctx, domain.BRD{Title: "x"})

	_, err := c.AppendChat(ctx, id, domain.ChatRole("system"), "hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 APIError, got %v", err)
	}
}
