package toon

import (
	"reflect"
	"testing"
)

func TestSplitUnquoted(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		delim byte
		want  []string
	}{
		{"simple", "a,b,c", ',', []string{"a", "b", "c"}},
		{"consecutive delimiters", "a,,b", ',', []string{"a", "", "b"}},
		{"quoted comma preserved", `a,"b,c",d`, ',', []string{"a", `"b,c"`, "d"}},
		{"tab delimiter", "a\tb\tc", '\t', []string{"a", "b", "c"}},
		{"pipe delimiter", "a|b|c", '|', []string{"a", "b", "c"}},
		{"no delimiter", "abc", ',', []string{"abc"}},
		{"empty string", "", ',', []string{""}},
		{"escaped quote inside quotes", `"a\"b",c`, ',', []string{`"a\"b"`, "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitUnquoted(tt.in, tt.delim)
			if err != nil {
				t.Fatalf("splitUnquoted(%q): %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitUnquoted_Errors(t *testing.T) {
	tests := []string{
		`"unterminated`,
		`"trailing backslash\`,
	}
	for _, in := range tests {
		if _, err := splitUnquoted(in, ','); err == nil {
			t.Errorf("splitUnquoted(%q): expected error", in)
		}
	}
}

func TestFirstUnquotedIndex(t *testing.T) {
	tests := []struct {
		in   string
		ch   byte
		want int
	}{
		{"a:b", ':', 1},
		{`"a:b":c`, ':', 5},
		{"noindex", ':', -1},
		{`"a\:b":c`, ':', 6},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := firstUnquotedIndex(tt.in, tt.ch); got != tt.want {
				t.Errorf("firstUnquotedIndex(%q, %q) = %d, want %d", tt.in, tt.ch, got, tt.want)
			}
		})
	}
}
