package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"brdstudio/internal/domain"
)

// Client calls the BRD API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a BRD API error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient constructs a BRD API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListBRDs fetches all stored BRDs, newest first.
func (c *Client) ListBRDs(ctx context.Context) ([]domain.BRD, error) {
	var brds []domain.BRD
	if err := c.doJSON(ctx, http.MethodGet, "/api/brds", nil, &brds); err != nil {
		return nil, err
	}
	return brds, nil
}

// GetBRD fetches one BRD by id.
func (c *Client) GetBRD(ctx context.Context, id string) (domain.BRD, error) {
	var brd domain.BRD
	if err := c.doJSON(ctx, http.MethodGet, "/api/brds/"+id, nil, &brd); err != nil {
		return domain.BRD{}, err
	}
	return brd, nil
}

type createBRDRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Transcription string `json:"transcription"`
	ExtraNotes    string `json:"extraNotes"`
	Language      string `json:"language"`
}

// CreateBRD persists a new BRD and returns its assigned id.
func (c *Client) CreateBRD(ctx context.Context, b domain.BRD) (string, error) {
	req := createBRDRequest{
		Title:         b.Title,
		Content:       b.Content,
		Transcription: b.Transcription,
		ExtraNotes:    b.ExtraNotes,
		Language:      string(b.Language),
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/brds", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdateContent replaces the stored document text after a refinement.
func (c *Client) UpdateContent(ctx context.Context, id, content string) error {
	body := map[string]string{"content": content}
	return c.doJSON(ctx, http.MethodPut, "/api/brds/"+id, body, nil)
}

// UploadFinal uploads the approved final document. Returns the stored path.
func (c *Client) UploadFinal(ctx context.Context, id, filename string, r io.Reader) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/brds/"+id+"/final", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", decodeAPIError(resp)
	}
	var out struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Path, nil
}

// ListChat fetches the full conversation for a BRD, oldest first.
func (c *Client) ListChat(ctx context.Context, brdID string) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/brds/"+brdID+"/chat", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// AppendChat records one chat turn and returns its assigned id.
func (c *Client) AppendChat(ctx context.Context, brdID string, role domain.ChatRole, content string) (string, error) {
	body := map[string]string{"role": string(role), "content": content}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/brds/"+brdID+"/chat", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&errResp)
	msg := errResp.Error
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
