package toon

import (
	"strconv"
	"strings"
)

// header is the recognized array-header descriptor, per spec.md §3/§4.D:
//
//	key?[#?N<d>?]{fields}?: inline?
type header struct {
	Key          string // "" when absent (root or list-item value)
	HasKey       bool
	Length       int
	LengthMarker bool // "#" preceded N
	Delim        byte
	Fields       []string // present ⇒ tabular array
	HasFields    bool
	Inline       string // present ⇒ inline array (non-empty tail)
	HasInline    bool
}

// tryParseHeader attempts to recognize line as a header. It returns
// (nil, nil) when line is not a header at all — a plain "key: value" or
// "key:" mapping line with no "[...]" on the left of the first unquoted
// colon. It returns a non-nil error only once the left side has been
// positively identified as header-shaped but fails to parse (per
// spec.md §4.D's parse_or_fail).
//
// Grounded on the teacher's ParseHeader (parse_header.go, GLYPH's
// "@lyph v2 @mode=..." token sweep) and detectTabular/
// parseTabularLooseHeaderWithMeta (loose.go), reworked from GLYPH's
// directive syntax to TOON's key[#N<d>]{fields}: syntax.
func tryParseHeader(content string) (*header, error) {
	colonIdx := firstUnquotedIndex(content, ':')
	if colonIdx < 0 {
		return nil, nil
	}
	left := content[:colonIdx]
	tail := strings.TrimSpace(content[colonIdx+1:])

	bracketStart := strings.IndexByte(left, '[')
	if bracketStart < 0 {
		return nil, nil // not a header: no bracket on the left
	}
	bracketEnd := strings.IndexByte(left[bracketStart:], ']')
	if bracketEnd < 0 {
		return nil, plainError("Invalid array header (missing [...])")
	}
	bracketEnd += bracketStart

	keyTok := strings.TrimSpace(left[:bracketStart])
	h := &header{}
	if keyTok != "" {
		key, err := decodeKey(keyTok)
		if err != nil {
			return nil, err
		}
		h.Key = key
		h.HasKey = true
	}

	if err := parseHeaderBracket(h, left[bracketStart+1:bracketEnd]); err != nil {
		return nil, err
	}

	fieldsTok := strings.TrimSpace(left[bracketEnd+1:])
	switch {
	case fieldsTok == "" && tail == "":
		// Expanded list: neither fields nor inline tail.
	case fieldsTok == "":
		h.Inline = tail
		h.HasInline = true
	case strings.HasPrefix(fieldsTok, "{") && strings.HasSuffix(fieldsTok, "}"):
		if tail != "" {
			return nil, plainError("Invalid header fields segment")
		}
		fields, err := parseHeaderFields(fieldsTok[1:len(fieldsTok)-1], h.Delim)
		if err != nil {
			return nil, err
		}
		h.Fields = fields
		h.HasFields = true
	default:
		return nil, plainError("Invalid header fields segment")
	}

	return h, nil
}

// parseHeaderBracket parses the "#?N<d>?" content between [ and ].
func parseHeaderBracket(h *header, inner string) error {
	h.Delim = byte(Comma)

	if strings.HasPrefix(inner, "#") {
		h.LengthMarker = true
		inner = inner[1:]
	}

	digits := inner
	if len(inner) > 0 {
		switch inner[len(inner)-1] {
		case '\t':
			h.Delim = byte(Tab)
			digits = inner[:len(inner)-1]
		case '|':
			h.Delim = byte(Pipe)
			digits = inner[:len(inner)-1]
		}
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return plainError("Invalid array length")
	}
	h.Length = n
	return nil
}

// parseHeaderFields splits the {fields} segment by the header's own
// declared delimiter (never a hardcoded comma — spec.md's open question
// about tab-delimited field segments requires this) and decodes each
// field as a key.
func parseHeaderFields(inner string, delim byte) ([]string, error) {
	if strings.TrimSpace(inner) == "" {
		return nil, plainError("Missing fields in tabular header")
	}
	raw, err := splitUnquoted(inner, delim)
	if err != nil {
		return nil, err
	}
	fields := make([]string, len(raw))
	for i, f := range raw {
		key, err := decodeKey(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		fields[i] = key
	}
	return fields, nil
}
