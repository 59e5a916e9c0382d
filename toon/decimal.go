package toon

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Decimal is an arbitrary-precision decimal number represented as
// coefficient * 10^-scale, with scale >= 0. It carries exactly the
// precision needed to round-trip the literal a document wrote — no more,
// no less — so "1.50" and "1.5" compare equal (Equal ignores scale
// differences that don't change the value) but the encoder still has
// enough information to canonicalize trailing zeros away on emit.
//
// Grounded on the teacher's Decimal128 (coefficient + scale over a fixed
// 128-bit two's-complement byte array); this widens the coefficient to
// *big.Int since TOON has no wire-format bit-width budget to respect.
type Decimal struct {
	coef  *big.Int
	scale int
}

// NewDecimalFromString parses a decimal literal matching the numeric
// grammar in spec.md §4.C (optional leading '-', digits, optional
// fractional part, optional exponent already normalized away by the
// caller). It does not accept exponents itself; parseNumericToken
// normalizes exponent form to plain digits before calling this.
func NewDecimalFromString(s string) (Decimal, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx+1:]
	}

	coef := new(big.Int)
	if _, ok := coef.SetString(intPart+fracPart, 10); !ok {
		return Decimal{}, errors.Errorf("toon: invalid decimal literal %q", s)
	}
	if neg {
		coef.Neg(coef)
	}

	return Decimal{coef: coef, scale: len(fracPart)}, nil
}

// DecimalFromInt returns the exact decimal representation of an int64.
func DecimalFromInt(v int64) Decimal {
	return Decimal{coef: big.NewInt(v), scale: 0}
}

// Equal reports whether two Decimals denote the same numeric value,
// regardless of scale (2.50 == 2.5).
func (d Decimal) Equal(other Decimal) bool {
	a, aScale := d.normalized()
	b, bScale := other.normalized()
	if aScale == bScale {
		return a.Cmp(b) == 0
	}
	// Bring both to the larger scale before comparing coefficients.
	if aScale < bScale {
		a = new(big.Int).Mul(a, pow10(bScale-aScale))
	} else {
		b = new(big.Int).Mul(b, pow10(aScale-bScale))
	}
	return a.Cmp(b) == 0
}

// normalized strips trailing zero digits from the fractional part so
// Equal doesn't need to special-case them, returning the reduced
// coefficient and scale.
func (d Decimal) normalized() (*big.Int, int) {
	if d.coef == nil {
		return big.NewInt(0), 0
	}
	coef := new(big.Int).Set(d.coef)
	scale := d.scale
	ten := big.NewInt(10)
	rem := new(big.Int)
	for scale > 0 {
		q, r := new(big.Int).DivMod(coef, ten, rem)
		if r.Sign() != 0 {
			break
		}
		coef = q
		scale--
	}
	return coef, scale
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// String renders the canonical decimal form: no exponent, no trailing
// fractional zeros, no fractional point when the fraction is all zero,
// and -0 normalized to 0. This is the routine spec.md §4.G.4 calls the
// "canonical decimal form" for Number values that aren't plain integers.
func (d Decimal) String() string {
	coef, scale := d.normalized()
	if coef.Sign() == 0 {
		return "0"
	}

	neg := coef.Sign() < 0
	abs := new(big.Int).Abs(coef)
	digits := abs.String()

	if scale == 0 {
		if neg {
			return "-" + digits
		}
		return digits
	}

	for len(digits) <= scale {
		digits = "0" + digits
	}
	intPart := digits[:len(digits)-scale]
	fracPart := digits[len(digits)-scale:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// Sign returns -1, 0, or 1 matching the decimal's sign.
func (d Decimal) Sign() int {
	if d.coef == nil {
		return 0
	}
	return d.coef.Sign()
}

// Float64 converts to a float64, for callers that need the host's native
// numeric type. Precision may be lost; the encoder never round-trips
// through this path.
func (d Decimal) Float64() float64 {
	if d.coef == nil {
		return 0
	}
	num := new(big.Float).SetInt(d.coef)
	den := new(big.Float).SetInt(pow10(d.scale))
	f, _ := new(big.Float).Quo(num, den).Float64()
	return f
}
