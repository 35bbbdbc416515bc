package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every WebDAV request. Expiry is treated like any
// other backend failure: a failed read or a dropped write, never a hang.
const DefaultTimeout = 10 * time.Second

// WebDAV implements Store backed by a remote HTTP document endpoint.
// The document is fetched with GET and replaced with PUT; there is no
// partial update and no retry — a transient failure loses one operation,
// which the single-user design accepts.
type WebDAV struct {
	url      string
	username string
	password string
	client   *http.Client
}

// NewWebDAV creates a WebDAV-backed store. Credentials may be empty, in
// which case requests are unauthenticated. A non-positive timeout falls
// back to DefaultTimeout.
func NewWebDAV(url, username, password string, timeout time.Duration) *WebDAV {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &WebDAV{
		url:      url,
		username: username,
		password: password,
		client:   &http.Client{Timeout: timeout},
	}
}

// Read fetches the whole document. A 404 reads as an empty document;
// other non-2xx statuses are errors.
func (w *WebDAV) Read(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return "", fmt.Errorf("store: build GET: %w", err)
	}
	w.setAuth(req)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("store: GET %s: %w", w.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("store: GET %s: unexpected status %d", w.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("store: read body: %w", err)
	}
	return string(body), nil
}

// Write replaces the whole document with a single PUT.
func (w *WebDAV) Write(ctx context.Context, content string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, w.url, strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("store: build PUT: %w", err)
	}
	req.Header.Set("Content-Type", "text/markdown; charset=utf-8")
	w.setAuth(req)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("store: PUT %s: %w", w.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("store: PUT %s: unexpected status %d", w.url, resp.StatusCode)
	}
	return nil
}

func (w *WebDAV) setAuth(req *http.Request) {
	if w.username != "" || w.password != "" {
		req.SetBasicAuth(w.username, w.password)
	}
}
