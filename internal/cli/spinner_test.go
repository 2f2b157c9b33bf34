package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, msg string) *Spinner {
	s := newSpinnerWithContext(ctx, msg)
	s.out = io.Discard
	return s
}

func TestSpinnerBasic(t *testing.T) {
	s := quietSpinner(context.Background(), "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not report the parent as cancelled")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := quietSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := quietSpinner(ctx, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := quietSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerOutput(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(context.Background(), "Rendering")
	s.out = &buf
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("Rendering map with a longer message")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering") {
		t.Errorf("spinner output %q missing message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Error("spinner should clear its line on stop")
	}
	if s.width != len("Rendering map with a longer message") {
		t.Errorf("width = %d, want widest message", s.width)
	}
}
