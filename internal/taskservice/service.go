// Package taskservice orchestrates the content store and the record
// engine. Every mutation is a full-document read, a single-line rewrite,
// and a full-document write; nothing is cached between calls.
package taskservice

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/ordo/internal/store"
	"github.com/starford/ordo/internal/task"
)

// Service exposes the task-list operations consumed by the web and MCP
// layers. Storage failures degrade to "do nothing" and are logged, never
// raised; mutation methods report whether a write actually happened, so
// callers can tell an out-of-range no-op from a completed change.
type Service struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a task service over the given content store.
func NewService(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger, now: time.Now}
}

// Load re-reads the document and returns every task record in document
// order. An unreadable backend yields an empty list.
func (s *Service) Load(ctx context.Context) []task.Record {
	content, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Warn("document read failed", slog.String("error", err.Error()))
		return nil
	}
	return task.ParseDocument(content)
}

// Toggle inverts the checkbox state of the line at lineIndex. The
// current state is re-derived from the raw line by substring check, not
// by re-parsing. Out-of-range indices are a silent no-op.
func (s *Service) Toggle(ctx context.Context, lineIndex int) bool {
	return s.rewriteLine(ctx, lineIndex, func(line string) string {
		return task.Toggle(line, !task.IsDone(line))
	})
}

// Add inserts a new unchecked task, stamped due today, immediately
// before the first separator line, or at document end if there is none.
// An empty title is a no-op.
func (s *Service) Add(ctx context.Context, title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}

	content, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Warn("document read failed", slog.String("error", err.Error()))
		return false
	}
	lines := task.SplitLines(content)

	insertAt := len(lines)
	for i, line := range lines {
		if strings.TrimSpace(line) == task.Separator {
			insertAt = i
			break
		}
	}

	today := task.DateOnly(s.now()).Format(task.DateLayout)
	newLine := "- [ ] " + title + " due:" + today

	lines = append(lines[:insertAt], append([]string{newLine}, lines[insertAt:]...)...)
	return s.write(ctx, lines)
}

// Edit rebuilds the line at lineIndex from the submitted fields. The
// identifier marker of the existing line is preserved unconditionally.
// Out-of-range indices are a silent no-op.
func (s *Service) Edit(ctx context.Context, lineIndex int, f task.Fields) bool {
	return s.rewriteLine(ctx, lineIndex, func(line string) string {
		return task.Rebuild(line, f)
	})
}

// Postpone moves the due date of the line at lineIndex to tomorrow,
// returning the new date. Out-of-range indices are a silent no-op.
func (s *Service) Postpone(ctx context.Context, lineIndex int) (time.Time, bool) {
	tomorrow := task.DateOnly(s.now()).AddDate(0, 0, 1)
	ok := s.rewriteLine(ctx, lineIndex, func(line string) string {
		return task.RewriteDue(line, tomorrow)
	})
	return tomorrow, ok
}

// rewriteLine is the shared read-full → mutate-one-line → write-full
// path behind every single-line mutation.
func (s *Service) rewriteLine(ctx context.Context, lineIndex int, rewrite func(string) string) bool {
	content, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Warn("document read failed", slog.String("error", err.Error()))
		return false
	}
	lines := task.SplitLines(content)
	if lineIndex < 0 || lineIndex >= len(lines) {
		return false
	}
	lines[lineIndex] = rewrite(lines[lineIndex])
	return s.write(ctx, lines)
}

func (s *Service) write(ctx context.Context, lines []string) bool {
	if err := s.store.Write(ctx, task.JoinLines(lines)); err != nil {
		s.logger.Error("document write failed", slog.String("error", err.Error()))
		return false
	}
	return true
}
