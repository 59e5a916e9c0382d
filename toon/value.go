package toon

import "fmt"

// Kind identifies which case of Value is populated.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindDecimal
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name, used in error messages and debug dumps.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Entry is a single (key, value) pair of a Mapping, in insertion order.
type Entry struct {
	Key   string
	Value *Value
}

// Value is a tagged variant covering TOON's full value universe: Null,
// Bool, Integer, Decimal, String, Sequence, and Mapping. Only the field
// matching Kind is meaningful; the others are zero.
//
// Value is deliberately a struct, not an interface, so exhaustive case
// analysis at the call site (a switch on Kind) is the only way to inspect
// one — mirroring the teacher's GValue rather than introducing per-kind
// types with a shared interface.
type Value struct {
	kind Kind

	boolVal    bool
	intVal     int64
	decimalVal Decimal
	strVal     string
	seqVal     []*Value
	mapVal     []Entry
}

// Null returns the null value.
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(v bool) *Value { return &Value{kind: KindBool, boolVal: v} }

// Integer returns an integer value.
func Integer(v int64) *Value { return &Value{kind: KindInteger, intVal: v} }

// DecimalValue returns a decimal value.
func DecimalValue(d Decimal) *Value { return &Value{kind: KindDecimal, decimalVal: d} }

// StringValue returns a string value. Named StringValue to avoid
// colliding with the String accessor method below.
func StringValue(v string) *Value { return &Value{kind: KindString, strVal: v} }

// Sequence returns a sequence value built from the given elements.
// A nil or empty slice yields an empty (but non-nil) sequence.
func Sequence(elems ...*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}
	return &Value{kind: KindSequence, seqVal: elems}
}

// Mapping returns a mapping value built from the given entries, in order.
// A later entry with a key already present overwrites the earlier one
// but keeps the earlier entry's position (see Set).
func Mapping(entries ...Entry) *Value {
	m := &Value{kind: KindMapping, mapVal: []Entry{}}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Kind returns the value's kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is nil or the Null value.
func (v *Value) IsNull() bool { return v == nil || v.kind == KindNull }

// Bool returns the boolean payload and whether v is a Bool.
func (v *Value) Bool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.boolVal, true
}

// Integer returns the integer payload and whether v is an Integer.
func (v *Value) Integer() (int64, bool) {
	if v == nil || v.kind != KindInteger {
		return 0, false
	}
	return v.intVal, true
}

// Decimal returns the decimal payload and whether v is a Decimal.
func (v *Value) Decimal() (Decimal, bool) {
	if v == nil || v.kind != KindDecimal {
		return Decimal{}, false
	}
	return v.decimalVal, true
}

// String returns the string payload and whether v is a String.
func (v *Value) String() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.strVal, true
}

// Elements returns the sequence's elements and whether v is a Sequence.
// The returned slice must not be mutated.
func (v *Value) Elements() ([]*Value, bool) {
	if v == nil || v.kind != KindSequence {
		return nil, false
	}
	return v.seqVal, true
}

// Entries returns the mapping's entries, in insertion order, and whether
// v is a Mapping. The returned slice must not be mutated.
func (v *Value) Entries() ([]Entry, bool) {
	if v == nil || v.kind != KindMapping {
		return nil, false
	}
	return v.mapVal, true
}

// Get returns the value for key in a Mapping, or nil if absent or v is
// not a Mapping.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindMapping {
		return nil
	}
	for _, e := range v.mapVal {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Set inserts or replaces the entry for key in a Mapping, preserving the
// original position on replacement (spec.md §4.F: "the second occurrence
// wins"). Set panics if v is not a Mapping.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindMapping {
		panic("toon: Set on non-mapping Value")
	}
	for i, e := range v.mapVal {
		if e.Key == key {
			v.mapVal[i].Value = val
			return
		}
	}
	v.mapVal = append(v.mapVal, Entry{Key: key, Value: val})
}

// Keys returns the mapping's keys in insertion order, or nil if v is not
// a Mapping.
func (v *Value) Keys() []string {
	if v == nil || v.kind != KindMapping {
		return nil
	}
	keys := make([]string, len(v.mapVal))
	for i, e := range v.mapVal {
		keys[i] = e.Key
	}
	return keys
}

// Append adds an element to a Sequence. Append panics if v is not a
// Sequence.
func (v *Value) Append(elem *Value) {
	if v.kind != KindSequence {
		panic("toon: Append on non-sequence Value")
	}
	v.seqVal = append(v.seqVal, elem)
}

// Equal reports whether v and other are structurally equal: same kind,
// same scalar payload (Decimal compared by value, not representation),
// same sequence elements in order, same mapping entries in order.
func (v *Value) Equal(other *Value) bool {
	vn, on := v.IsNull(), other.IsNull()
	if vn || on {
		return vn == on
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInteger:
		return v.intVal == other.intVal
	case KindDecimal:
		return v.decimalVal.Equal(other.decimalVal)
	case KindString:
		return v.strVal == other.strVal
	case KindSequence:
		if len(v.seqVal) != len(other.seqVal) {
			return false
		}
		for i := range v.seqVal {
			if !v.seqVal[i].Equal(other.seqVal[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.mapVal) != len(other.mapVal) {
			return false
		}
		for i := range v.mapVal {
			if v.mapVal[i].Key != other.mapVal[i].Key {
				return false
			}
			if !v.mapVal[i].Value.Equal(other.mapVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// GoString implements a debug representation used by the CLI's decode dump.
func (v *Value) GoString() string {
	if v == nil {
		return "null"
	}
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.boolVal)
	case KindInteger:
		return fmt.Sprintf("%d", v.intVal)
	case KindDecimal:
		return v.decimalVal.String()
	case KindString:
		return fmt.Sprintf("%q", v.strVal)
	case KindSequence:
		return fmt.Sprintf("sequence[%d]", len(v.seqVal))
	case KindMapping:
		return fmt.Sprintf("mapping[%d]", len(v.mapVal))
	default:
		return "?"
	}
}
