package toon

import "testing"

func TestNewLineScanner_Classification(t *testing.T) {
	sc, err := newLineScanner("a: 1\n  b: 2\n\n", DefaultDecoderOptions())
	if err != nil {
		t.Fatalf("newLineScanner: %v", err)
	}
	lines := sc.remaining()
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0].Depth != 0 || lines[0].Content != "a: 1" {
		t.Errorf("line 0: %+v", lines[0])
	}
	if lines[1].Depth != 1 || lines[1].Content != "b: 2" {
		t.Errorf("line 1: %+v", lines[1])
	}
	if !lines[2].Blank {
		t.Errorf("line 2 should be blank: %+v", lines[2])
	}
	if !lines[3].Blank {
		t.Errorf("line 3 (from trailing newline split) should be blank: %+v", lines[3])
	}
}

func TestNewLineScanner_CRLFNormalized(t *testing.T) {
	sc, err := newLineScanner("a: 1\r\nb: 2\r\n", DefaultDecoderOptions())
	if err != nil {
		t.Fatalf("newLineScanner: %v", err)
	}
	lines := sc.remaining()
	if lines[0].Content != "a: 1" || lines[1].Content != "b: 2" {
		t.Errorf("unexpected content: %+v %+v", lines[0], lines[1])
	}
}

func TestNewLineScanner_StrictRejectsTabIndent(t *testing.T) {
	if _, err := newLineScanner("a:\n\tb: 1\n", DefaultDecoderOptions()); err == nil {
		t.Fatal("expected error for tab indentation in strict mode")
	}
}

func TestNewLineScanner_StrictRejectsTrailingSpace(t *testing.T) {
	if _, err := newLineScanner("a: 1 \n", DefaultDecoderOptions()); err == nil {
		t.Fatal("expected error for trailing space in strict mode")
	}
}

func TestNewLineScanner_LenientTolerates(t *testing.T) {
	opts := DefaultDecoderOptions()
	opts.Strict = false
	if _, err := newLineScanner("a:\n\tb: 1\n", opts); err != nil {
		t.Fatalf("unexpected error in lenient mode: %v", err)
	}
}

func TestLineScanner_PeekNextAtEnd(t *testing.T) {
	sc, err := newLineScanner("a: 1", DefaultDecoderOptions())
	if err != nil {
		t.Fatalf("newLineScanner: %v", err)
	}
	if sc.atEnd() {
		t.Fatal("should not be at end before consuming")
	}
	l, ok := sc.next()
	if !ok || l.Content != "a: 1" {
		t.Fatalf("next() = %+v, %v", l, ok)
	}
	if !sc.atEnd() {
		t.Fatal("should be at end after consuming the only line")
	}
	if _, ok := sc.next(); ok {
		t.Fatal("next() at end should report !ok")
	}
}

func TestLine_IsComment(t *testing.T) {
	sc, err := newLineScanner("# a comment\nnot a comment", DefaultDecoderOptions())
	if err != nil {
		t.Fatalf("newLineScanner: %v", err)
	}
	lines := sc.remaining()
	if !lines[0].isComment() {
		t.Error("expected first line to be a comment")
	}
	if lines[1].isComment() {
		t.Error("second line should not be a comment")
	}
}
