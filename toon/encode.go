package toon

import (
	"regexp"
	"strconv"
	"strings"
)

// Encode serializes v to TOON text, per spec.md §6's external encode
// operation. The produced text has no terminal newline.
//
// Grounded on the teacher's emit.go (dispatch-by-type emitter),
// canon.go (canonical scalar rendering), and loose.go's
// detectTabular/writeTabularLoose (tabular-eligibility test and row
// emission loop), adapted from GLYPH's brace/pipe syntax to TOON's
// indentation/colon syntax.
func Encode(v *Value, opts EncoderOptions) (string, error) {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = Comma
	}

	e := &encoder{opts: opts}

	switch v.Kind() {
	case KindMapping:
		e.emitMapping(v, 0)
	case KindSequence:
		e.emitSequenceAtKey("items", v, 0)
	default:
		e.writeIndent(0)
		e.sb.WriteString(renderScalar(v))
		e.newline()
	}

	return strings.TrimSuffix(e.sb.String(), "\n"), e.err
}

type encoder struct {
	sb   strings.Builder
	opts EncoderOptions
	err  error
}

func (e *encoder) fail(format string, args ...any) {
	if e.err == nil {
		e.err = newEncodeError(format, args...)
	}
}

func (e *encoder) writeIndent(level int) {
	e.sb.WriteString(strings.Repeat(" ", level*e.opts.IndentWidth))
}

func (e *encoder) newline() { e.sb.WriteByte('\n') }

// emitMapping implements spec.md §4.G.1.
func (e *encoder) emitMapping(v *Value, level int) {
	entries, _ := v.Entries()
	for _, entry := range entries {
		switch entry.Value.Kind() {
		case KindSequence:
			e.emitSequenceAtKeyIndented(entry.Key, entry.Value, level)
		case KindMapping:
			e.writeIndent(level)
			e.sb.WriteString(encodeKeyToken(entry.Key))
			e.sb.WriteString(":")
			e.newline()
			e.emitMapping(entry.Value, level+1)
		default:
			e.writeIndent(level)
			e.sb.WriteString(encodeKeyToken(entry.Key))
			e.sb.WriteString(": ")
			e.sb.WriteString(renderScalar(entry.Value))
			e.newline()
		}
	}
}

func (e *encoder) emitSequenceAtKeyIndented(key string, v *Value, level int) {
	e.writeIndent(level)
	e.emitSequenceHeader(key, v, level)
}

// emitSequenceAtKey is used for the root-sequence case, where the
// synthetic key "items" has no enclosing indentation to account for.
func (e *encoder) emitSequenceAtKey(key string, v *Value, level int) {
	e.emitSequenceHeader(key, v, level)
}

// emitSequenceHeader implements spec.md §4.G.3: choose tabular,
// primitive-inline, or expanded form and emit the header plus body.
func (e *encoder) emitSequenceHeader(key string, v *Value, level int) {
	elems, _ := v.Elements()
	delim := e.opts.Delimiter
	prefix := lengthPrefix(len(elems), e.opts.LengthMarker, delim)
	keyTok := encodeKeyToken(key)

	if cols, ok := tabularColumns(elems); ok {
		var fieldParts []string
		for _, c := range cols {
			fieldParts = append(fieldParts, encodeKeyToken(c))
		}
		e.sb.WriteString(keyTok)
		e.sb.WriteString(prefix)
		e.sb.WriteByte('{')
		e.sb.WriteString(joinDelim(fieldParts, delim))
		e.sb.WriteString("}:")
		e.newline()
		for _, row := range elems {
			e.writeIndent(level + 1)
			var cells []string
			for _, c := range cols {
				cell := row.Get(c)
				if !cell.IsNull() && !primitiveEligible([]*Value{cell}) {
					e.fail("Unsupported: tabular cell %q is a %s, not a scalar", c, cell.Kind())
				}
				cells = append(cells, renderCell(cell))
			}
			e.sb.WriteString(joinDelim(cells, delim))
			e.newline()
		}
		return
	}

	if primitiveEligible(elems) {
		var parts []string
		for _, elem := range elems {
			parts = append(parts, renderScalar(elem))
		}
		e.sb.WriteString(keyTok)
		e.sb.WriteString(prefix)
		e.sb.WriteString(": ")
		e.sb.WriteString(joinDelim(parts, delim))
		e.newline()
		return
	}

	// Expanded list: spec.md §4.G.3.
	e.sb.WriteString(keyTok)
	e.sb.WriteString(prefix)
	e.sb.WriteString(":")
	e.newline()
	for _, item := range elems {
		e.writeIndent(level + 1)
		switch item.Kind() {
		case KindMapping:
			e.emitExpandedMapItem(item, level+1)
		case KindSequence:
			e.fail("Unsupported: nested sequence as a list item")
			e.newline()
		default:
			e.sb.WriteString("- ")
			e.sb.WriteString(renderScalar(item))
			e.newline()
		}
	}
}

// emitExpandedMapItem emits "- key: value" (or "- key:" plus a nested
// mapping block) for a mapping-valued expanded-list item.
func (e *encoder) emitExpandedMapItem(item *Value, level int) {
	entries, _ := item.Entries()
	if len(entries) == 0 {
		e.sb.WriteString("-")
		e.newline()
		return
	}
	first := entries[0]
	e.sb.WriteString("- ")
	switch first.Value.Kind() {
	case KindMapping:
		e.sb.WriteString(encodeKeyToken(first.Key))
		e.sb.WriteString(":")
		e.newline()
		e.emitMapping(first.Value, level+1)
	case KindSequence:
		e.emitSequenceHeader(first.Key, first.Value, level)
	default:
		e.sb.WriteString(encodeKeyToken(first.Key))
		e.sb.WriteString(": ")
		e.sb.WriteString(renderScalar(first.Value))
		e.newline()
	}
	if len(entries) > 1 {
		rest := Mapping(entries[1:]...)
		e.emitMapping(rest, level+1)
	}
}

// lengthPrefix renders the "[#?N<d>?]" segment of a header, per spec.md
// §4.D's bracket grammar: <d> is the literal TAB or "|" byte itself
// (comma needs no marker, since it's the implicit default).
func lengthPrefix(n int, marker bool, delim Delimiter) string {
	var b strings.Builder
	b.WriteByte('[')
	if marker {
		b.WriteByte('#')
	}
	b.WriteString(strconv.Itoa(n))
	if delim != Comma {
		b.WriteByte(byte(delim))
	}
	b.WriteByte(']')
	return b.String()
}

func joinDelim(parts []string, d Delimiter) string {
	return strings.Join(parts, string(rune(d)))
}

// tabularColumns implements spec.md §4.G.2's tabular-eligibility test.
// Grounded on the teacher's detectTabular (loose.go), simplified from
// GLYPH's sorted/partial-overlap column model to TOON's exact rule:
// every element a Mapping, first element's keys non-empty, every other
// element identical keys in the same order.
func tabularColumns(elems []*Value) ([]string, bool) {
	if len(elems) == 0 {
		return nil, false
	}
	if elems[0].Kind() != KindMapping {
		return nil, false
	}
	cols := elems[0].Keys()
	if len(cols) == 0 {
		return nil, false
	}
	for _, elem := range elems[1:] {
		if elem.Kind() != KindMapping {
			return nil, false
		}
		keys := elem.Keys()
		if len(keys) != len(cols) {
			return nil, false
		}
		for i, k := range keys {
			if k != cols[i] {
				return nil, false
			}
		}
	}
	return cols, true
}

// primitiveEligible implements spec.md §4.G.2's fallback test.
func primitiveEligible(elems []*Value) bool {
	for _, e := range elems {
		switch e.Kind() {
		case KindNull, KindBool, KindInteger, KindDecimal, KindString:
		default:
			return false
		}
	}
	return true
}

// renderScalar implements spec.md §4.G.4 outside of a table-cell
// position.
func renderScalar(v *Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		b, _ := v.Bool()
		if b {
			return "true"
		}
		return "false"
	case KindInteger:
		n, _ := v.Integer()
		return strconv.FormatInt(n, 10)
	case KindDecimal:
		d, _ := v.Decimal()
		return d.String()
	case KindString:
		s, _ := v.String()
		return quoteIfNeeded(s)
	default:
		return "null"
	}
}

// renderCell renders a tabular cell using the same rules as any other
// scalar. Spec.md §4.G.4 permits an optional carve-out — skipping
// quotes when the cell body has no ambiguity with the active
// delimiter — but that carve-out only ever buys back a comma-bearing
// string under a tab or pipe delimiter; every other quoting trigger is
// unambiguous regardless of delimiter, so this always applies the full
// rule rather than special-casing that one case. A nil cell (a
// lenient short row) renders as null.
func renderCell(v *Value) string {
	if v.IsNull() {
		return "null"
	}
	return renderScalar(v)
}

var numericLike = regexp.MustCompile(`^-?\d+(\.\d+)?([eE][+\-]?\d+)?$`)
var leadingZeroLike = regexp.MustCompile(`^-?0\d`)

// quoteIfNeeded implements spec.md §4.G.4's String quoting rule.
func quoteIfNeeded(s string) string {
	if needsQuoting(s) {
		return quoteScalarString(s)
	}
	return s
}

// needsQuoting also forces quoting on a raw LF or CR: the format is
// line-oriented, so an unescaped newline inside a scalar would split
// into two physical lines on the next decode. Not called out by name
// in the trigger list since it falls out of the format's own
// invariants rather than being an arbitrary addition.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if isSpace(s[0]) || isSpace(s[len(s)-1]) {
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	if numericLike.MatchString(s) || leadingZeroLike.MatchString(s) {
		return true
	}
	if strings.ContainsAny(s, ":\"\\[]{}\t|,\n\r") {
		return true
	}
	if strings.HasPrefix(s, "-") {
		return true
	}
	return false
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// quoteScalarString escapes \, ", LF, CR, TAB — the same five escapes
// §4.C accepts on decode — and wraps the result in double quotes.
// Grounded on the teacher's quoteString (canon.go), trimmed to the five
// escapes spec.md §4.C/§4.G.4 name rather than also emitting \u00XX for
// arbitrary control characters.
func quoteScalarString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

// encodeKeyToken implements spec.md §9's quoted-key normalization: a key
// that would be an invalid unquoted key token is quoted, using the same
// five escapes as strings.
func encodeKeyToken(key string) string {
	if unquotedKeyPattern.MatchString(key) {
		return key
	}
	return quoteScalarString(key)
}
