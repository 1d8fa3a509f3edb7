package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journey.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestAppendFormatsLevelAndFoldsNewlines(t *testing.T) {
	dir := t.TempDir()
	clock := func() time.Time { return time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC) }
	book, err := New(filepath.Join(dir, "logs", "journey.log"), WithClock(clock))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Warn("trip refused:\n  count %q", "0")
	book.Error("boom")
	lines, total := book.Tail(10)
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if lines[0] != `2024-03-01T08:30:00Z WARN  trip refused: count "0"` {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2024-03-01T08:30:00Z ERROR boom") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestTailOnMissingFileAndNilBook(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "journey.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	if lines, total := book.Tail(4); lines != nil || total != 0 {
		t.Fatalf("expected empty tail, got %v/%d", lines, total)
	}
	var nilBook *Logbook
	nilBook.Info("ignored")
	if nilBook.Path() != "" {
		t.Fatalf("nil logbook should have empty path")
	}
	if lines, _ := nilBook.Tail(3); lines != nil {
		t.Fatalf("nil logbook tail should be empty")
	}
}
