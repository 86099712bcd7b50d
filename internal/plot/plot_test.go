package plot

import (
	"strings"
	"testing"
)

func TestBarProportionalFill(t *testing.T) {
	got := Bar(5, 10, 0, 10)
	if len(got) != 10 {
		t.Fatalf("expected 10-char bar, got %d (%q)", len(got), got)
	}
	if got != "#####     " {
		t.Fatalf("unexpected bar: %q", got)
	}
}

func TestBarOverflowWidthTracksMax(t *testing.T) {
	// Historical overflow behavior: width equals int(xMax), not chars.
	got := Bar(15, 10, 0, 10)
	if got != strings.Repeat("#", 10) {
		t.Fatalf("unexpected overflow bar: %q", got)
	}

	got = Bar(50, 4, 0, 10)
	if got != "####" {
		t.Fatalf("expected 4-char overflow run, got %q", got)
	}
}

func TestBarClampsBelowMin(t *testing.T) {
	got := Bar(-3, 10, 0, 8)
	if got != strings.Repeat(" ", 8) {
		t.Fatalf("expected empty 8-char bar, got %q", got)
	}
}

func TestBarDegenerateInputs(t *testing.T) {
	if got := Bar(1, 1, 1, 10); got != "" {
		t.Fatalf("expected empty string for zero range, got %q", got)
	}
	if got := Bar(1, 10, 0, 0); got != "" {
		t.Fatalf("expected empty string for zero budget, got %q", got)
	}
}

func TestBarNonZeroMin(t *testing.T) {
	got := Bar(7.5, 10, 5, 10)
	if got != "#####     " {
		t.Fatalf("unexpected bar with shifted min: %q", got)
	}
}
