package toon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, text string) *Value {
	t.Helper()
	v, err := Decode(text, DefaultDecoderOptions())
	require.NoError(t, err)
	return v
}

func cmpValues(t *testing.T, got, want *Value) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("value mismatch (-got +want):\n%s", cmp.Diff(dump(got), dump(want)))
	}
}

// dump renders a Value into a plain Go structure cmp can diff legibly.
func dump(v *Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		b, _ := v.Bool()
		return b
	case KindInteger:
		n, _ := v.Integer()
		return n
	case KindDecimal:
		d, _ := v.Decimal()
		return d.String()
	case KindString:
		s, _ := v.String()
		return s
	case KindSequence:
		elems, _ := v.Elements()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = dump(e)
		}
		return out
	case KindMapping:
		entries, _ := v.Entries()
		out := map[string]any{}
		for _, e := range entries {
			out[e.Key] = dump(e.Value)
		}
		return out
	default:
		return "?"
	}
}

func TestDecode_Mapping(t *testing.T) {
	v := mustDecode(t, "name: Alice\nage: 30\nactive: true\n")
	cmpValues(t, v, Mapping(
		Entry{"name", StringValue("Alice")},
		Entry{"age", Integer(30)},
		Entry{"active", Bool(true)},
	))
}

func TestDecode_NestedMapping(t *testing.T) {
	v := mustDecode(t, "user:\n  name: Bob\n  address:\n    city: NYC\n")
	cmpValues(t, v, Mapping(Entry{"user", Mapping(
		Entry{"name", StringValue("Bob")},
		Entry{"address", Mapping(Entry{"city", StringValue("NYC")})},
	)}))
}

func TestDecode_TabularArray(t *testing.T) {
	text := "users[2]{id,name}:\n  1,Alice\n  2,Bob\n"
	v := mustDecode(t, text)
	cmpValues(t, v, Mapping(Entry{"users", Sequence(
		Mapping(Entry{"id", Integer(1)}, Entry{"name", StringValue("Alice")}),
		Mapping(Entry{"id", Integer(2)}, Entry{"name", StringValue("Bob")}),
	)}))
}

func TestDecode_InlineArray(t *testing.T) {
	v := mustDecode(t, "tags[3]: a,b,c\n")
	cmpValues(t, v, Mapping(Entry{"tags", Sequence(StringValue("a"), StringValue("b"), StringValue("c"))}))
}

func TestDecode_ExpandedList(t *testing.T) {
	v := mustDecode(t, "items[2]:\n  - 1\n  - 2\n")
	cmpValues(t, v, Mapping(Entry{"items", Sequence(Integer(1), Integer(2))}))
}

func TestDecode_ExpandedListBlankSeparatorBeforeNextKey(t *testing.T) {
	v := mustDecode(t, "items[1]:\n  - a\n\nother: 5\n")
	cmpValues(t, v, Mapping(
		Entry{"items", Sequence(StringValue("a"))},
		Entry{"other", Integer(5)},
	))
}

func TestDecode_ExpandedListBlankBeforeFirstItem(t *testing.T) {
	text := "items[2]:\n\n  - 1\n  - 2\n"
	_, err := Decode(text, DefaultDecoderOptions())
	require.Error(t, err)

	opts := DefaultDecoderOptions()
	opts.Strict = false
	v, err := Decode(text, opts)
	require.NoError(t, err)
	cmpValues(t, v, Mapping(Entry{"items", Sequence(Integer(1), Integer(2))}))
}

func TestDecode_RootPrimitive(t *testing.T) {
	v := mustDecode(t, "42\n")
	cmpValues(t, v, Integer(42))
}

func TestDecode_RootArray(t *testing.T) {
	v := mustDecode(t, "[2]: 1,2\n")
	cmpValues(t, v, Sequence(Integer(1), Integer(2)))
}

func TestDecode_Empty(t *testing.T) {
	v := mustDecode(t, "")
	cmpValues(t, v, Mapping())
}

func TestDecode_QuotedStringsAndEscapes(t *testing.T) {
	v := mustDecode(t, `s: "hello, \"world\"\n"`+"\n")
	got, ok := v.Get("s").String()
	require.True(t, ok)
	require.Equal(t, "hello, \"world\"\n", got)
}

func TestDecode_DecimalAndExponent(t *testing.T) {
	v := mustDecode(t, "x: 1.50\ny: 1e-3\n")
	x, _ := v.Get("x").Decimal()
	require.Equal(t, "1.5", x.String())
	y, _ := v.Get("y").Decimal()
	require.Equal(t, "0.001", y.String())
}

func TestDecode_LeadingZeroStaysString(t *testing.T) {
	v := mustDecode(t, "code: 00123\n")
	s, ok := v.Get("code").String()
	require.True(t, ok)
	require.Equal(t, "00123", s)
}

func TestDecode_NullAndTilde(t *testing.T) {
	v := mustDecode(t, "a: null\nb: ~\n")
	require.True(t, v.Get("a").IsNull())
	require.True(t, v.Get("b").IsNull())
}

func TestDecode_DuplicateKeyLastWins(t *testing.T) {
	v := mustDecode(t, "a: 1\nb: 2\na: 3\n")
	n, _ := v.Get("a").Integer()
	require.Equal(t, int64(3), n)
	require.Equal(t, []string{"a", "b"}, v.Keys())
}

func TestDecode_StrictErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"tab indent", "a:\n\tb: 1\n"},
		{"trailing space", "a: 1 \n"},
		{"misaligned indent", "a:\n   b: 1\n"},
		{"row count mismatch", "xs[2]{a}:\n  1\n"},
		{"row width mismatch", "xs[1]{a,b}:\n  1\n"},
		{"unterminated string", `s: "abc` + "\n"},
		{"trailing content", "1\n2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.text, DefaultDecoderOptions())
			require.Error(t, err)
			var decErr *DecodeError
			require.ErrorAs(t, err, &decErr)
		})
	}
}

func TestDecode_LenientTolerates(t *testing.T) {
	opts := DefaultDecoderOptions()
	opts.Strict = false
	_, err := Decode("xs[2]{a}:\n  1\n", opts)
	require.NoError(t, err)
}

func TestDecode_CommentsAndBlankLines(t *testing.T) {
	v := mustDecode(t, "# a comment\na: 1\n\nb: 2\n")
	cmpValues(t, v, Mapping(Entry{"a", Integer(1)}, Entry{"b", Integer(2)}))
}

func TestDecode_PipeDelimiter(t *testing.T) {
	v := mustDecode(t, "xs[2|]{a|b}:\n  1|2\n  3|4\n")
	cmpValues(t, v, Mapping(Entry{"xs", Sequence(
		Mapping(Entry{"a", Integer(1)}, Entry{"b", Integer(2)}),
		Mapping(Entry{"a", Integer(3)}, Entry{"b", Integer(4)}),
	)}))
}

func TestDecode_LengthMarker(t *testing.T) {
	v := mustDecode(t, "xs[#2]{a}:\n  1\n  2\n")
	elems, _ := v.Get("xs").Elements()
	require.Len(t, elems, 2)
}
