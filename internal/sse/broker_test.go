package sse

import (
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishTaskEvent(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishTaskEvent("toggled", 4)

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: task.toggled") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"line_index":4`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishDocumentChanged_Coalesced(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// A burst of change signals must produce a single broadcast.
	b.PublishDocumentChanged()
	b.PublishDocumentChanged()
	b.PublishDocumentChanged()

	count := 0
	deadline := time.After(300 * time.Millisecond)
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				t.Fatal("channel closed")
			}
			if strings.Contains(string(msg), "event: document.updated") {
				count++
			}
		case <-deadline:
			if count != 1 {
				t.Errorf("document.updated count = %d, want 1", count)
			}
			return
		}
	}
}

func TestSubscribeAfterClose(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	b.Close()

	ch := b.Subscribe()
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after broker close")
	}
	// Publishing after close must not panic or block.
	b.Publish(Event{Type: "task.added", Data: map[string]int{}})
	b.PublishDocumentChanged()
	if b.ClientCount() != 0 {
		t.Error("expected 0 clients after close")
	}
}
