package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"neuradocs/internal/platform/id"
)

const (
	Version = "0.1.0"

	// maxBodyBytes bounds how much of a response is buffered. Chunk lists for
	// large PDFs stay well under this.
	maxBodyBytes = 64 << 20
	maxErrorText = 512
)

// Response is a settled 2xx reply.
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	return &Client{baseURL: u, httpClient: &http.Client{Timeout: timeout}}, nil
}

// PostJSON sends payload as a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}
	return c.post(ctx, path, "application/json", bytes.NewReader(body))
}

// PostFile sends a multipart form with a single file field.
func (c *Client) PostFile(ctx context.Context, path, field, filename string, content io.Reader) (Response, error) {
	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", "application/pdf")
	part, err := form.CreatePart(header)
	if err != nil {
		return Response{}, fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return Response{}, fmt.Errorf("copy file into form: %w", err)
	}
	if err := form.Close(); err != nil {
		return Response{}, fmt.Errorf("close form: %w", err)
	}
	return c.post(ctx, path, form.FormDataContentType(), buf)
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (Response, error) {
	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "neuradocs/"+Version)
	if requestID := id.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	return Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

// errorMessage pulls a readable reason out of a failure body: the JSON
// "error" or "detail" field when present, otherwise the raw text.
func errorMessage(raw []byte) string {
	var decoded struct {
		Error  any `json:"error"`
		Detail any `json:"detail"`
	}
	if json.Unmarshal(raw, &decoded) == nil {
		for _, v := range []any{decoded.Error, decoded.Detail} {
			switch v := v.(type) {
			case string:
				if v != "" {
					return v
				}
			case nil:
			default:
				if b, err := json.Marshal(v); err == nil {
					return truncate(string(b))
				}
			}
		}
	}
	return truncate(strings.TrimSpace(string(raw)))
}

func truncate(s string) string {
	if len(s) <= maxErrorText {
		return s
	}
	cut := maxErrorText
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

// RemoteError is a 2xx reply whose body reports a failure in an "error"
// field.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "backend reported error: " + e.Message
}
