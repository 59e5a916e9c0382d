package toon

import "strings"

// Line is the output of the line lexer (spec.md §4.A component A):
// a single physical line of the document, pre-classified by
// indentation depth and blankness. Lines are immutable once created.
type Line struct {
	Number       int    // 1-based
	Raw          string // the raw line, before leading-space stripping
	LeadingSpace int    // count of leading SPACE (0x20) characters
	Depth        int    // LeadingSpace / indentWidth
	Content      string // Raw minus leading spaces, right-trimmed
	Blank        bool   // true iff Content == ""
}

// isComment reports whether the line is a mapping-level comment: its
// first non-space character (which, since Content has leading spaces
// stripped, is simply its first character) is '#'. Comments are only
// special at mapping level (spec.md §4.A) — inside table rows a leading
// '#' is data, so callers must not use this inside a tabular loop.
func (l Line) isComment() bool {
	return !l.Blank && l.Content[0] == '#'
}

// lineScanner walks a pre-split, pre-classified slice of Lines with a
// cursor, exposing peek/next/remaining. Grounded on the teacher's Lexer
// (token.go) position bookkeeping and on uplang-go's Scanner wrapper
// idiom, but pre-splits into a slice (as the teacher's own Lexer.Tokenize
// does) rather than wrapping bufio.Scanner directly, since the block
// parser needs arbitrary peek-ahead that a single-pass bufio.Scanner
// cannot give.
type lineScanner struct {
	lines []Line
	pos   int
}

// newLineScanner normalizes newlines, splits text into Lines, and
// classifies each one per spec.md §4.A. Strict-mode validation (tabs in
// indentation, misaligned indent, trailing spaces) happens here, one
// line at a time, since every downstream consumer must see the same
// validated Line.
func newLineScanner(text string, opts DecoderOptions) (*lineScanner, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	raws := strings.Split(text, "\n")

	lines := make([]Line, 0, len(raws))
	for i, raw := range raws {
		num := i + 1

		if opts.Strict {
			if idx := strings.IndexAny(leadingWhitespace(raw), "\t"); idx >= 0 {
				return nil, newDecodeError(num, raw, "Tabs are not allowed in indentation")
			}
			if strings.HasSuffix(raw, " ") {
				return nil, newDecodeError(num, raw, "Trailing spaces are not allowed")
			}
		}

		leading := 0
		for leading < len(raw) && raw[leading] == ' ' {
			leading++
		}

		depth := leading / opts.IndentWidth
		if opts.Strict && leading%opts.IndentWidth != 0 {
			return nil, newDecodeError(num, raw, "Indentation must be a multiple of %d", opts.IndentWidth)
		}

		content := strings.TrimRight(raw[leading:], " ")

		lines = append(lines, Line{
			Number:       num,
			Raw:          raw,
			LeadingSpace: leading,
			Depth:        depth,
			Content:      content,
			Blank:        content == "",
		})
	}

	return &lineScanner{lines: lines}, nil
}

// leadingWhitespace returns the prefix of raw consisting of spaces and
// tabs, stopping at the first other character.
func leadingWhitespace(raw string) string {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	return raw[:i]
}

// peek returns the next Line without advancing, and whether one exists.
func (s *lineScanner) peek() (Line, bool) {
	if s.pos >= len(s.lines) {
		return Line{}, false
	}
	return s.lines[s.pos], true
}

// next advances past and returns the next Line.
func (s *lineScanner) next() (Line, bool) {
	l, ok := s.peek()
	if ok {
		s.pos++
	}
	return l, ok
}

// remaining returns every Line not yet consumed.
func (s *lineScanner) remaining() []Line {
	return s.lines[s.pos:]
}

// atEnd reports whether every Line has been consumed.
func (s *lineScanner) atEnd() bool {
	return s.pos >= len(s.lines)
}
