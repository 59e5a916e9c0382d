package toon

import (
	"strings"

	"github.com/go-kit/log"
)

// Decode parses text into a Value, per spec.md §6's external decode
// operation. \r\n and \r are normalized to \n internally (component A).
//
// Grounded on the teacher's ParseTabularLoose / parseTabularLooseRow /
// parseLooseValue (loose.go): the row-driven table loop and the
// schema-optional value dispatch carry over directly; the indentation
// state machine and root-form detection below are new, since the
// teacher's loose parser has no indentation concept (GLYPH is
// brace-delimited, not line-oriented).
func Decode(text string, opts DecoderOptions) (*Value, error) {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	dbg := opts.debug()

	sc, err := newLineScanner(text, opts)
	if err != nil {
		return nil, err
	}

	root, err := decodeRoot(sc, opts, dbg)
	if err != nil {
		return nil, err
	}

	for _, l := range sc.remaining() {
		if !l.Blank {
			return nil, newDecodeError(l.Number, l.Raw, "Trailing content after root value")
		}
	}

	return root, nil
}

// absentKey is the Mapping key used for the "-:" anonymous null-keyed
// list sentinel (spec.md §4.E.2 item 1) — an obscure literal-spec
// feature with no clear round-trip story, so it is represented as the
// empty-string key rather than inventing a reserved sentinel constant
// that the encoder would also need to special-case.
const absentKey = ""

// decodeRoot implements spec.md §4.E.1's root-form detection and
// dispatches to the matching parse path.
func decodeRoot(sc *lineScanner, opts DecoderOptions, dbg log.Logger) (*Value, error) {
	switch classifyRoot(sc.remaining()) {
	case rootEmpty:
		return Mapping(), nil

	case rootPrimitive:
		skipBlanksAndComments(sc)
		l, ok := sc.next()
		if !ok {
			return nil, newDecodeError(0, "", "Unexpected EOF while expecting a root token")
		}
		val, err := parsePrimitive(l.Content)
		if err != nil {
			return nil, newDecodeError(l.Number, l.Raw, "%s", err.Error())
		}
		return val, nil

	case rootArray:
		skipBlanksAndComments(sc)
		l, ok := sc.next()
		if !ok {
			return nil, newDecodeError(0, "", "Unexpected EOF while expecting a root token")
		}
		h, err := tryParseHeader(l.Content)
		if err != nil {
			return nil, newDecodeError(l.Number, l.Raw, "%s", err.Error())
		}
		_ = dbg.Log("component", "decode", "line", l.Number, "msg", "root array header")
		return decodeHeaderValue(sc, h, l, opts)

	default: // rootMapping
		return decodeMapping(sc, 0, opts)
	}
}

type rootKind int

const (
	rootEmpty rootKind = iota
	rootPrimitive
	rootArray
	rootMapping
)

// classifyRoot implements spec.md §4.E.1 without consuming any lines.
func classifyRoot(lines []Line) rootKind {
	sig := significantLines(lines)
	if len(sig) == 0 {
		return rootEmpty
	}
	first := sig[0]

	h, err := tryParseHeader(first.Content)
	if err != nil {
		// Header-shaped (a bracket was found) but malformed: treat as
		// an array so the real error surfaces from the array decode
		// path instead of being swallowed here.
		return rootArray
	}
	if h != nil {
		if !h.HasKey {
			return rootArray
		}
		return rootMapping
	}

	if len(sig) == 1 && firstUnquotedIndex(first.Content, ':') < 0 {
		return rootPrimitive
	}
	return rootMapping
}

// significantLines filters out blank and comment lines, mirroring what
// skipBlanksAndComments consumes, without advancing any scanner.
func significantLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Blank || l.isComment() {
			continue
		}
		out = append(out, l)
	}
	return out
}

func skipBlanksAndComments(sc *lineScanner) {
	for {
		l, ok := sc.peek()
		if !ok || !(l.Blank || l.isComment()) {
			return
		}
		sc.next()
	}
}

// looksLikeHeader performs the cheap structural check spec.md §4.D uses
// to distinguish a header from a plain "key: value" line: an unquoted
// ':' exists and the text to its left contains '['.
func looksLikeHeader(content string) bool {
	colonIdx := firstUnquotedIndex(content, ':')
	if colonIdx < 0 {
		return false
	}
	return strings.IndexByte(content[:colonIdx], '[') >= 0
}

// decodeMapping implements spec.md §4.E.2: the mapping-line dispatch
// loop at a fixed base_indent.
func decodeMapping(sc *lineScanner, baseDepth int, opts DecoderOptions) (*Value, error) {
	m := Mapping()

	for {
		skipBlanksAndComments(sc)
		l, ok := sc.peek()
		if !ok {
			break
		}
		if l.Depth < baseDepth {
			break
		}
		if l.Depth > baseDepth {
			if opts.Strict {
				return nil, newDecodeError(l.Number, l.Raw, "Unexpected indentation at line %d", l.Number)
			}
			sc.next()
			continue
		}

		content := l.Content

		if strings.HasPrefix(content, "-:") {
			sc.next()
			val, err := parsePrimitive(strings.TrimSpace(content[2:]))
			if err != nil {
				return nil, newDecodeError(l.Number, l.Raw, "%s", err.Error())
			}
			m.Set(absentKey, val)
			continue
		}

		if looksLikeHeader(content) {
			h, err := tryParseHeader(content)
			if err != nil {
				return nil, newDecodeError(l.Number, l.Raw, "%s", err.Error())
			}
			if h != nil {
				if !h.HasKey {
					return nil, newDecodeError(l.Number, l.Raw, "Header at object level must have a key")
				}
				sc.next()
				_ = opts.debug().Log("component", "header", "line", l.Number, "key", h.Key, "length", h.Length)
				val, err := decodeHeaderValue(sc, h, l, opts)
				if err != nil {
					return nil, err
				}
				m.Set(h.Key, val)
				continue
			}
		}

		if colonIdx := firstUnquotedIndex(content, ':'); colonIdx >= 0 {
			sc.next()
			key, err := decodeKey(strings.TrimSpace(content[:colonIdx]))
			if err != nil {
				return nil, newDecodeError(l.Number, l.Raw, "%s", err.Error())
			}
			right := strings.TrimSpace(content[colonIdx+1:])
			if right == "" {
				nested, err := decodeMapping(sc, baseDepth+1, opts)
				if err != nil {
					return nil, err
				}
				m.Set(key, nested)
			} else {
				val, err := parsePrimitive(right)
				if err != nil {
					return nil, newDecodeError(l.Number, l.Raw, "%s", err.Error())
				}
				m.Set(key, val)
			}
			continue
		}

		// No handler accepts this line: stop consuming the mapping and
		// leave it for the caller.
		break
	}

	return m, nil
}

// decodeHeaderValue dispatches a recognized header to the tabular,
// inline, or expanded-list parse path per spec.md §4.E.2 item 2.
func decodeHeaderValue(sc *lineScanner, h *header, headerLine Line, opts DecoderOptions) (*Value, error) {
	switch {
	case h.HasFields:
		return decodeTabularArray(sc, h, headerLine, opts)
	case h.HasInline:
		return decodeInlineArray(h, headerLine, opts)
	default:
		return decodeExpandedList(sc, h, headerLine, opts)
	}
}

// decodeTabularArray implements spec.md §4.E.3.
func decodeTabularArray(sc *lineScanner, h *header, headerLine Line, opts DecoderOptions) (*Value, error) {
	rowIndent := headerLine.Depth + 1
	var rows []*Value

	for {
		l, ok := sc.peek()
		if !ok {
			break
		}

		if l.Blank {
			if opts.Strict && rowFollows(sc, rowIndent) {
				return nil, newDecodeError(l.Number, l.Raw, "Blank line inside tabular rows is not allowed")
			}
			sc.next()
			continue
		}

		if l.Depth < rowIndent {
			break
		}
		if l.Depth > rowIndent {
			if opts.Strict {
				return nil, newDecodeError(l.Number, l.Raw, "Unexpected indentation at line %d", l.Number)
			}
			sc.next()
			continue
		}

		delimIdx := firstUnquotedIndex(l.Content, h.Delim)
		colonIdx := firstUnquotedIndex(l.Content, ':')
		if colonIdx >= 0 && (delimIdx < 0 || colonIdx < delimIdx) {
			break // nested key, not a row: end of table
		}

		if opts.Strict && len(rows) >= h.Length {
			return nil, newDecodeError(l.Number, l.Raw, "Too many tabular rows")
		}

		sc.next()
		parts, err := splitUnquoted(l.Content, h.Delim)
		if err != nil {
			return nil, wrapSplitError(err, l.Number, l.Raw)
		}

		if opts.Strict && len(parts) != len(h.Fields) {
			return nil, newDecodeError(l.Number, l.Raw, "Tabular row width mismatch")
		}

		row := Mapping()
		n := len(parts)
		if n > len(h.Fields) {
			n = len(h.Fields)
		}
		for i := 0; i < n; i++ {
			val, err := parsePrimitive(strings.TrimSpace(parts[i]))
			if err != nil {
				return nil, newDecodeError(l.Number, l.Raw, "%s", err.Error())
			}
			row.Set(h.Fields[i], val)
		}
		for i := n; i < len(h.Fields); i++ {
			row.Set(h.Fields[i], Null())
		}
		rows = append(rows, row)
	}

	if opts.Strict && len(rows) != h.Length {
		return nil, newDecodeError(headerLine.Number, headerLine.Raw, "Expected %d rows, got %d", h.Length, len(rows))
	}

	return Sequence(rows...), nil
}

// rowFollows reports whether, ignoring further blank lines, a non-blank
// line at exactly rowIndent appears before the table ends (a line with
// depth < rowIndent, or end of input). Trailing blank lines alone never
// make a table incomplete (spec.md §4.E.3's "allowance": the row-count
// check at the end of the loop is what ultimately reports a mismatch,
// so a blank-inside-rows error is only raised when a real row still
// follows).
func rowFollows(sc *lineScanner, rowIndent int) bool {
	for _, l := range sc.remaining() {
		if l.Blank {
			continue
		}
		if l.Depth < rowIndent {
			return false
		}
		if l.Depth == rowIndent {
			return true
		}
	}
	return false
}

// itemFollows reports whether, ignoring further blank lines, a non-blank
// line at exactly itemIndent appears before the list ends (a line with
// depth < itemIndent, or end of input). Mirrors rowFollows: a trailing
// blank line — including the synthetic one strings.Split produces for
// input ending in "\n" — never makes a list incomplete on its own; only
// a blank genuinely followed by another item is an error.
func itemFollows(sc *lineScanner, itemIndent int) bool {
	for _, l := range sc.remaining() {
		if l.Blank {
			continue
		}
		if l.Depth < itemIndent {
			return false
		}
		if l.Depth == itemIndent {
			return true
		}
	}
	return false
}

// decodeInlineArray implements spec.md §4.E.4.
func decodeInlineArray(h *header, headerLine Line, opts DecoderOptions) (*Value, error) {
	parts, err := splitUnquoted(h.Inline, h.Delim)
	if err != nil {
		return nil, wrapSplitError(err, headerLine.Number, headerLine.Raw)
	}

	vals := make([]*Value, len(parts))
	for i, p := range parts {
		val, err := parsePrimitive(strings.TrimSpace(p))
		if err != nil {
			return nil, newDecodeError(headerLine.Number, headerLine.Raw, "%s", err.Error())
		}
		vals[i] = val
	}

	if opts.Strict && len(parts) != h.Length {
		return nil, newDecodeError(headerLine.Number, headerLine.Raw, "Inline array length mismatch")
	}

	return Sequence(vals...), nil
}

// decodeExpandedList implements spec.md §4.E.5.
func decodeExpandedList(sc *lineScanner, h *header, headerLine Line, opts DecoderOptions) (*Value, error) {
	itemIndent := headerLine.Depth + 1
	var items []*Value

	for {
		l, ok := sc.peek()
		if !ok {
			break
		}

		if l.Blank {
			if opts.Strict && itemFollows(sc, itemIndent) {
				return nil, newDecodeError(l.Number, l.Raw, "Unexpected EOF while reading list item")
			}
			sc.next()
			continue
		}

		if l.Depth < itemIndent {
			break
		}
		if l.Depth > itemIndent {
			if opts.Strict {
				return nil, newDecodeError(l.Number, l.Raw, "Unexpected indentation at line %d", l.Number)
			}
			sc.next()
			continue
		}

		if l.Content != "-" && !strings.HasPrefix(l.Content, "- ") {
			break
		}

		sc.next()
		body := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(l.Content, "-"), " "))

		isMapItem := strings.HasPrefix(body, "[") || strings.HasPrefix(body, "{") || firstUnquotedIndex(body, ':') >= 0
		if isMapItem {
			if opts.Strict {
				return nil, newDecodeError(l.Number, l.Raw, "List item maps are not supported in strict mode")
			}
			item, err := decodeExpandedMapItem(sc, body, itemIndent+1, opts)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			continue
		}

		val, err := parsePrimitive(body)
		if err != nil {
			return nil, newDecodeError(l.Number, l.Raw, "%s", err.Error())
		}
		items = append(items, val)
	}

	if opts.Strict && len(items) != h.Length {
		return nil, newDecodeError(headerLine.Number, headerLine.Raw, "List array item count mismatch")
	}

	return Sequence(items...), nil
}

// decodeExpandedMapItem implements the lenient-mode single-key mapping
// fallback for a mapping-valued list item (spec.md §4.E.5).
func decodeExpandedMapItem(sc *lineScanner, body string, nestedDepth int, opts DecoderOptions) (*Value, error) {
	colonIdx := firstUnquotedIndex(body, ':')
	if colonIdx < 0 {
		// No colon despite the bracket trigger: treat the whole body as
		// a bare key with no value.
		key, err := decodeKey(strings.TrimSpace(body))
		if err != nil {
			return nil, plainDecodeError(err)
		}
		return Mapping(Entry{Key: key, Value: Null()}), nil
	}

	key, err := decodeKey(strings.TrimSpace(body[:colonIdx]))
	if err != nil {
		return nil, plainDecodeError(err)
	}
	right := strings.TrimSpace(body[colonIdx+1:])
	if right == "" {
		nested, err := decodeMapping(sc, nestedDepth, opts)
		if err != nil {
			return nil, err
		}
		return Mapping(Entry{Key: key, Value: nested}), nil
	}

	val, err := parsePrimitive(right)
	if err != nil {
		return nil, plainDecodeError(err)
	}
	return Mapping(Entry{Key: key, Value: val}), nil
}

func plainDecodeError(err error) error {
	return &DecodeError{Message: err.Error()}
}
