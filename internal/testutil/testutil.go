// Package testutil provides shared test helpers for setting up task
// documents and services.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/ordo/internal/store"
	"github.com/starford/ordo/internal/taskservice"
)

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDocument writes content to a temp file and returns a file store
// over it plus the file path. An empty content leaves the file absent.
func TestDocument(t *testing.T, content string) (*store.File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.md")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	st, err := store.NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return st, path
}

// TestService builds a task service over a temp document seeded with
// content, returning the service and the document path.
func TestService(t *testing.T, content string) (*taskservice.Service, string) {
	t.Helper()
	st, path := TestDocument(t, content)
	return taskservice.NewService(st, QuietLogger()), path
}

// ReadDocument returns the current document content.
func ReadDocument(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatal(err)
	}
	return string(data)
}
