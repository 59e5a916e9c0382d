package toon

import (
	"strings"
	"testing"
)

func TestDecodeError_MessageFormat(t *testing.T) {
	err := newDecodeError(3, "bad: line", "Something went wrong")
	msg := err.Error()
	if !strings.Contains(msg, "line 3") || !strings.Contains(msg, "Something went wrong") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestDecodeError_TruncatesLongExcerpt(t *testing.T) {
	long := strings.Repeat("x", 500)
	err := newDecodeError(1, long, "oops")
	if !strings.HasSuffix(err.Excerpt, "…") {
		t.Errorf("expected truncated excerpt to end with an ellipsis, got %q", err.Excerpt[len(err.Excerpt)-10:])
	}
	if len([]rune(err.Excerpt)) != maxErrorExcerpt+1 {
		t.Errorf("excerpt rune length = %d, want %d", len([]rune(err.Excerpt)), maxErrorExcerpt+1)
	}
}

func TestEncodeError_Message(t *testing.T) {
	err := newEncodeError("Unsupported: %s", "widget")
	if err.Error() != "toon: Unsupported: widget" {
		t.Errorf("got %q", err.Error())
	}
}
