package toon

import "github.com/go-kit/log"

// Delimiter identifies the active separator used within a tabular
// array's rows and fields, or within an inline array.
type Delimiter byte

const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
	Pipe  Delimiter = '|'
)

func (d Delimiter) String() string {
	switch d {
	case Tab:
		return "tab"
	case Pipe:
		return "pipe"
	default:
		return "comma"
	}
}

// DecoderOptions configures Decode, per spec.md §3.
type DecoderOptions struct {
	// Strict, when true (the default), promotes blanks inside tables,
	// row-count mismatches, misaligned indentation, tabs in indentation,
	// trailing spaces, and over-indented rows to errors. When false,
	// these are tolerated and the decoder returns a best-effort Value.
	Strict bool

	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int

	// Debug, when non-nil, receives structured trace lines from the
	// header recognizer and block parser (component, line, message).
	// A nil Debug costs nothing on the hot path; DefaultDecoderOptions
	// sets it to a no-op logger rather than leaving it nil so callers
	// never need a nil check.
	Debug log.Logger
}

// DefaultDecoderOptions returns spec.md §3's documented defaults:
// strict decoding, two-space indentation, no debug trace.
func DefaultDecoderOptions() DecoderOptions {
	return DecoderOptions{
		Strict:      true,
		IndentWidth: 2,
		Debug:       log.NewNopLogger(),
	}
}

func (o DecoderOptions) debug() log.Logger {
	if o.Debug == nil {
		return log.NewNopLogger()
	}
	return o.Debug
}

// EncoderOptions configures Encode, per spec.md §3.
type EncoderOptions struct {
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int

	// Delimiter is the active separator for tabular rows, header
	// fields, and inline arrays.
	Delimiter Delimiter

	// LengthMarker, when true, emits "[#N]" instead of "[N]" in
	// headers.
	LengthMarker bool
}

// DefaultEncoderOptions returns spec.md §3's documented defaults: two
// space indentation, comma delimiter, no length marker.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		IndentWidth: 2,
		Delimiter:   Comma,
	}
}
