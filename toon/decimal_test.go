package toon

import "testing"

func TestDecimal_StringCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.50", "1.5"},
		{"1.00", "1"},
		{"0.000001", "0.000001"},
		{"-0.0", "0"},
		{"100", "100"},
		{"-42.5", "-42.5"},
		{"0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := NewDecimalFromString(tt.in)
			if err != nil {
				t.Fatalf("NewDecimalFromString(%q): %v", tt.in, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecimal_Equal(t *testing.T) {
	a, _ := NewDecimalFromString("2.50")
	b, _ := NewDecimalFromString("2.5")
	c, _ := NewDecimalFromString("2.501")
	if !a.Equal(b) {
		t.Error("2.50 should equal 2.5")
	}
	if a.Equal(c) {
		t.Error("2.50 should not equal 2.501")
	}
}

func TestDecimal_InvalidLiteral(t *testing.T) {
	if _, err := NewDecimalFromString("12x34"); err == nil {
		t.Fatal("expected error for invalid decimal literal")
	}
}

func TestDecimal_Sign(t *testing.T) {
	pos, _ := NewDecimalFromString("1.5")
	neg, _ := NewDecimalFromString("-1.5")
	zero, _ := NewDecimalFromString("0")
	if pos.Sign() != 1 || neg.Sign() != -1 || zero.Sign() != 0 {
		t.Errorf("signs: %d %d %d, want 1 -1 0", pos.Sign(), neg.Sign(), zero.Sign())
	}
}

func TestDecimal_Float64(t *testing.T) {
	d, _ := NewDecimalFromString("3.25")
	if got := d.Float64(); got != 3.25 {
		t.Errorf("Float64() = %v, want 3.25", got)
	}
}

func TestDecimal_FromInt(t *testing.T) {
	d := DecimalFromInt(42)
	if got := d.String(); got != "42" {
		t.Errorf("String() = %q, want 42", got)
	}
}
