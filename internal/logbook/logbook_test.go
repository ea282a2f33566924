package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "session.log")
	lb, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	defer lb.Close()
	lb.Info("console opened")
	lb.Warn("backend slow: %dms", 1200)
	lb.Error("refresh failed")

	lines := lb.Tail(10)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "INFO") || !strings.Contains(lines[0], "console opened") {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "backend slow: 1200ms") {
		t.Fatalf("formatting lost: %q", lines[1])
	}
}

func TestTailLimitsToMostRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	lb, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	defer lb.Close()
	for i := 0; i < 20; i++ {
		lb.Info("entry %d", i)
	}
	lines := lb.Tail(5)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[4], "entry 19") {
		t.Fatalf("tail must end with the newest entry: %q", lines[4])
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var lb *Logbook
	lb.Info("ignored")
	if lines := lb.Tail(3); lines != nil {
		t.Fatalf("nil logbook must return no lines")
	}
	if lb.Path() != "" {
		t.Fatalf("nil logbook must have empty path")
	}
}
