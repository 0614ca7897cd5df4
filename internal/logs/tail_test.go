package logs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}

func TestTailLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitchbook.log")
	writeLog(t, path, "one\ntwo\nthree\nfour\n")

	tests := []struct {
		limit int
		want  string
	}{
		{limit: 2, want: "three,four"},
		{limit: 4, want: "one,two,three,four"},
		{limit: 10, want: "one,two,three,four"},
		{limit: 0, want: ""},
	}
	for _, tt := range tests {
		res, err := Tail(context.Background(), path, TailOptions{Offset: -1, Limit: tt.limit})
		if err != nil {
			t.Fatalf("limit %d: %v", tt.limit, err)
		}
		if got := strings.Join(res.Lines, ","); got != tt.want {
			t.Fatalf("limit %d: expected %q, got %q", tt.limit, tt.want, got)
		}
		if res.Offset != 19 {
			t.Fatalf("limit %d: expected offset 19, got %d", tt.limit, res.Offset)
		}
	}
}

func TestTailMissingFile(t *testing.T) {
	res, err := Tail(context.Background(), filepath.Join(t.TempDir(), "absent.log"), TailOptions{Offset: -1, Limit: 5})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(res.Lines) != 0 || res.Offset != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestTailResumesFromOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitchbook.log")
	writeLog(t, path, "one\n")
	first, err := Tail(context.Background(), path, TailOptions{Offset: -1, Limit: 5})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	appendLog(t, path, "two\npart")
	next, err := Tail(context.Background(), path, TailOptions{Offset: first.Offset})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if strings.Join(next.Lines, ",") != "two" {
		t.Fatalf("expected only the complete line, got %q", next.Lines)
	}

	appendLog(t, path, "ial\n")
	last, err := Tail(context.Background(), path, TailOptions{Offset: next.Offset})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if strings.Join(last.Lines, ",") != "partial" {
		t.Fatalf("expected joined partial line, got %q", last.Lines)
	}
}

func TestTailRestartsAfterTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitchbook.log")
	writeLog(t, path, "a long first line\nanother line\n")
	writeLog(t, path, "fresh\n")

	res, err := Tail(context.Background(), path, TailOptions{Offset: 31})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if strings.Join(res.Lines, ",") != "fresh" {
		t.Fatalf("expected restart from the top, got %q", res.Lines)
	}
}

func TestTailFollowWaits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitchbook.log")
	writeLog(t, path, "")

	go func() {
		time.Sleep(100 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			t.Errorf("open log: %v", err)
			return
		}
		defer f.Close()
		f.WriteString("late\n")
	}()

	res, err := Tail(context.Background(), path, TailOptions{Offset: 0, Follow: true, Wait: 3 * time.Second})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if strings.Join(res.Lines, ",") != "late" {
		t.Fatalf("expected followed line, got %q", res.Lines)
	}
}

func TestTailFollowStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitchbook.log")
	writeLog(t, path, "")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Tail(ctx, path, TailOptions{Offset: 0, Follow: true, Wait: time.Minute})
	if err == nil {
		t.Fatal("expected context error")
	}
}
