package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"brdstudio/internal/domain"
	"brdstudio/internal/storage"
	"brdstudio/internal/store"
)

func newTestServer(t *testing.T) (http.Handler, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	finals, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	srv := New(Config{Store: mem, Finals: finals})
	return srv.Router(), mem
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}

func TestCreateAndFetchBRD(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/brds", map[string]string{
		"title":         "Payment Portal",
		"content":       "# Payment Portal BRD",
		"transcription": "### Transcription for: call.mp3\n\nwe need payments",
		"extraNotes":    "phase one only",
		"language":      "ar",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d body = %s", rec.Code, rec.Body.String())
	}
	id := decodeBody[map[string]string](t, rec)["id"]
	if id == "" {
		t.Fatal("expected id in create response")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/brds/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	got := decodeBody[domain.BRD](t, rec)
	if got.Title != "Payment Portal" || got.ExtraNotes != "phase one only" {
		t.Fatalf("unexpected BRD: %+v", got)
	}
	if got.Language != domain.LanguageArabic {
		t.Fatalf("language = %q", got.Language)
	}
}

func TestCreateBRDDefaultsLanguage(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/brds", map[string]string{"title": "x"})
	id := decodeBody[map[string]string](t, rec)["id"]

	got := decodeBody[domain.BRD](t, doJSON(t, h, http.MethodGet, "/api/brds/"+id, nil))
	if got.Language != domain.LanguageEnglish {
		t.Fatalf("language = %q", got.Language)
	}
}

func TestGetBRDNotFound(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/brds/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeBody[map[string]string](t, rec)["error"]; msg != "BRD not found" {
		t.Fatalf("error = %q", msg)
	}
}

func TestListBRDsNewestFirst(t *testing.T) {
	h, mem := newTestServer(t)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	mem.SeedBRD(domain.BRD{ID: "old", Title: "old", CreatedAt: base})
	mem.SeedBRD(domain.BRD{ID: "new", Title: "new", CreatedAt: base.Add(time.Hour)})

	rec := doJSON(t, h, http.MethodGet, "/api/brds", nil)
	brds := decodeBody[[]domain.BRD](t, rec)
	if len(brds) != 2 || brds[0].ID != "new" || brds[1].ID != "old" {
		t.Fatalf("unexpected order: %+v", brds)
	}
}

func TestUpdateContent(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/brds", map[string]string{"title": "x", "content": "v1"})
	id := decodeBody[map[string]string](t, rec)["id"]

	rec = doJSON(t, h, http.MethodPut, "/api/brds/"+id, map[string]string{"content": "v2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	got := decodeBody[domain.BRD](t, doJSON(t, h, http.MethodGet, "/api/brds/"+id, nil))
	if got.Content != "v2" {
		t.Fatalf("content = %q", got.Content)
	}

	rec = doJSON(t, h, http.MethodPut, "/api/brds/missing", map[string]string{"content": "x"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing status = %d", rec.Code)
	}
}

func multipartUpload(t *testing.T, fieldName, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if fieldName != "" {
		fw, err := w.CreateFormFile(fieldName, filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	} else if err := w.WriteField("note", "no file here"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestFinalUploadStoresFileAndPath(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/brds", map[string]string{"title": "x"})
	id := decodeBody[map[string]string](t, rec)["id"]

	body, contentType := multipartUpload(t, "file", "approved.pdf", "final document bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/brds/"+id+"/final", body)
	req.Header.Set("Content-Type", contentType)
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("upload status = %d body = %s", rec2.Code, rec2.Body.String())
	}
	path := decodeBody[map[string]string](t, rec2)["path"]
	if !strings.HasSuffix(path, "-approved.pdf") {
		t.Fatalf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "final document bytes" {
		t.Fatalf("stored content = %q", data)
	}

	got := decodeBody[domain.BRD](t, doJSON(t, h, http.MethodGet, "/api/brds/"+id, nil))
	if got.FinalDocPath != path {
		t.Fatalf("final_doc_path = %q want %q", got.FinalDocPath, path)
	}
}

func TestFinalUploadWithoutFile(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/brds", map[string]string{"title": "x"})
	id := decodeBody[map[string]string](t, rec)["id"]

	body, contentType := multipartUpload(t, "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/brds/"+id+"/final", body)
	req.Header.Set("Content-Type", contentType)
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec2.Code)
	}
	if msg := decodeBody[map[string]string](t, rec2)["error"]; msg != "No file uploaded" {
		t.Fatalf("error = %q", msg)
	}

	got := decodeBody[domain.BRD](t, doJSON(t, h, http.MethodGet, "/api/brds/"+id, nil))
	if got.FinalDocPath != "" {
		t.Fatalf("final_doc_path should stay empty, got %q", got.FinalDocPath)
	}
}

func TestFinalUploadUnknownBRD(t *testing.T) {
	h, _ := newTestServer(t)
	body, contentType := multipartUpload(t, "file", "approved.pdf", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/brds/missing/final", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestChatAppendAndList(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/brds", map[string]string{"title": "x"})
	id := decodeBody[map[string]string](t, rec)["id"]

	turns := []map[string]string{
		{"role": "user", "content": "what is the scope?"},
		{"role": "model", "content": "phase one covers payments."},
	}
	for _, turn := range turns {
		rec = doJSON(t, h, http.MethodPost, "/api/brds/"+id+"/chat", turn)
		if rec.Code != http.StatusOK {
			t.Fatalf("append status = %d body = %s", rec.Code, rec.Body.String())
		}
	}

	msgs := decodeBody[[]domain.ChatMessage](t, doJSON(t, h, http.MethodGet, "/api/brds/"+id+"/chat", nil))
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[1].Role != domain.RoleModel {
		t.Fatalf("roles out of order: %+v", msgs)
	}
	if msgs[1].Content != "phase one covers payments." {
		t.Fatalf("content = %q", msgs[1].Content)
	}
}

func TestAppendChatValidation(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/brds", map[string]string{"title": "x"})
	id := decodeBody[map[string]string](t, rec)["id"]

	rec = doJSON(t, h, http.MethodPost, "/api/brds/"+id+"/chat", map[string]string{"role": "system", "content": "hi"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad role status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/brds/"+id+"/chat", map[string]string{"role": "user", "content": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty content status = %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodDelete, "/api/brds", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/brds/missing", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("error responses lack security headers: %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/brds", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("missing CORS header")
	}
}
