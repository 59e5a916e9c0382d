package toon

import "testing"

func TestValue_KindOfNil(t *testing.T) {
	var v *Value
	if v.Kind() != KindNull {
		t.Errorf("nil Value.Kind() = %v, want KindNull", v.Kind())
	}
	if !v.IsNull() {
		t.Error("nil Value.IsNull() = false, want true")
	}
}

func TestValue_MappingSetPreservesPosition(t *testing.T) {
	m := Mapping(Entry{"a", Integer(1)}, Entry{"b", Integer(2)})
	m.Set("a", Integer(99))

	if got := m.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", got)
	}
	n, ok := m.Get("a").Integer()
	if !ok || n != 99 {
		t.Fatalf("Get(a) = %v, %v, want 99, true", n, ok)
	}
}

func TestValue_AppendPanicsOnNonSequence(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic appending to a non-sequence")
		}
	}()
	Mapping().Append(Integer(1))
}

func TestValue_SetPanicsOnNonMapping(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic setting on a non-mapping")
		}
	}()
	Sequence().Set("k", Integer(1))
}

func TestValue_EqualIgnoresDecimalScale(t *testing.T) {
	a, _ := NewDecimalFromString("1.50")
	b, _ := NewDecimalFromString("1.5")
	if !DecimalValue(a).Equal(DecimalValue(b)) {
		t.Error("decimals with different scale but same value should be Equal")
	}
}

func TestValue_EqualStructural(t *testing.T) {
	a := Mapping(Entry{"xs", Sequence(Integer(1), StringValue("x"))})
	b := Mapping(Entry{"xs", Sequence(Integer(1), StringValue("x"))})
	c := Mapping(Entry{"xs", Sequence(Integer(1), StringValue("y"))})
	if !a.Equal(b) {
		t.Error("expected a.Equal(b)")
	}
	if a.Equal(c) {
		t.Error("expected !a.Equal(c)")
	}
}

func TestValue_GetMissingKey(t *testing.T) {
	m := Mapping(Entry{"a", Integer(1)})
	if v := m.Get("missing"); !v.IsNull() {
		t.Errorf("Get(missing) = %v, want null", v)
	}
}
