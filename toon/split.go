package toon

import "strings"

// splitUnquoted splits s by delim, treating double-quoted spans as
// atomic: a backslash inside a quoted span consumes the following byte
// literally (the pair is preserved verbatim, for later unescaping by
// parsePrimitive). Consecutive delimiters yield empty parts.
//
// The state machine walks s byte-by-byte rather than rune-by-rune: every
// character it looks for ('"', '\\', and the delimiters comma/tab/pipe)
// is single-byte ASCII, and ASCII bytes never appear as part of a
// multi-byte UTF-8 encoding, so byte scanning is exact even though s may
// contain arbitrary Unicode text.
//
// Grounded on the teacher's tokenizeHeader (parse_header.go) and
// splitTabularCells (loose.go), generalized from a fixed delimiter to
// any of comma/tab/pipe and from backslash-only escaping to full
// quote-span tracking.
func splitUnquoted(s string, delim byte) ([]string, error) {
	var parts []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case inQuotes && c == '\\':
			if i+1 >= len(s) {
				return nil, plainError("Unterminated escape")
			}
			cur.WriteByte(c)
			cur.WriteByte(s[i+1])
			i++
		case !inQuotes && c == delim:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, plainError("Unterminated string")
	}
	parts = append(parts, cur.String())
	return parts, nil
}

type plainError string

func (e plainError) Error() string { return string(e) }

// wrapSplitError attaches line/excerpt context to an error returned by
// splitUnquoted.
func wrapSplitError(err error, line int, raw string) error {
	if err == nil {
		return nil
	}
	return newDecodeError(line, raw, "%s", err.Error())
}

// firstUnquotedIndex returns the byte index of the first occurrence of
// ch outside a quoted span, or -1 if none exists. Used to locate the
// key/value separator ':' and to disambiguate row data from nested keys
// on tabular lines (spec.md §4.B, §4.E.3). ch must be single-byte ASCII.
func firstUnquotedIndex(s string, ch byte) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case inQuotes && c == '\\':
			i++ // skip the escaped byte
		case !inQuotes && c == ch:
			return i
		}
	}
	return -1
}
