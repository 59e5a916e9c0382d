// Package marshal binds TOON documents to Go structs via reflection,
// the way the teacher's bridge.go/json_bridge.go bind GLYPH values to
// interface{} and JSON. It sits entirely on top of the public toon
// package: neither toon.Decode nor toon.Encode know this package
// exists.
package marshal

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"github.com/toon-lang/toon-go/toon"
)

// Decode parses text as TOON and populates the fields of out, which
// must be a non-nil pointer to a struct. Struct fields are matched by
// a `toon:"name"` tag, falling back to the Go field name when no tag
// is present, mirroring the teacher's JSON-tag matching in
// fromJSONValue/ToSJSON.
func Decode(text string, out any, opts toon.DecoderOptions) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.New("marshal: out must be a non-nil pointer to a struct")
	}

	root, err := toon.Decode(text, opts)
	if err != nil {
		return err
	}
	if root.Kind() != toon.KindMapping {
		return errors.Errorf("marshal: root value is a %s, not a mapping", root.Kind())
	}

	return decodeStruct(root, rv.Elem())
}

// Encode reflects in — a struct or a pointer to one — into a
// toon.Value using the same tag rule as Decode, then serializes it.
func Encode(in any, opts toon.EncoderOptions) (string, error) {
	rv := reflect.ValueOf(in)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "", errors.New("marshal: in is a nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return "", errors.Errorf("marshal: in must be a struct or pointer to one, got %s", rv.Kind())
	}

	v, err := encodeStruct(rv)
	if err != nil {
		return "", err
	}
	return toon.Encode(v, opts)
}

func fieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("toon")
	if tag == "-" {
		return "", false
	}
	if tag != "" {
		return tag, true
	}
	if f.PkgPath != "" {
		return "", false // unexported
	}
	return f.Name, true
}

func decodeStruct(src *toon.Value, dst reflect.Value) error {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, ok := fieldName(f)
		if !ok {
			continue
		}
		val := src.Get(name)
		if val.IsNull() {
			continue
		}
		if err := decodeField(val, dst.Field(i)); err != nil {
			return errors.Wrapf(err, "field %q", name)
		}
	}
	return nil
}

func decodeField(src *toon.Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.String:
		s, ok := src.String()
		if !ok {
			return errors.Errorf("expected a string, got a %s", src.Kind())
		}
		dst.SetString(s)

	case reflect.Bool:
		b, ok := src.Bool()
		if !ok {
			return errors.Errorf("expected a bool, got a %s", src.Kind())
		}
		dst.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := scalarInt(src)
		if err != nil {
			return err
		}
		dst.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := scalarInt(src)
		if err != nil {
			return err
		}
		if n < 0 {
			return errors.New("expected a non-negative integer")
		}
		dst.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		f, err := scalarFloat(src)
		if err != nil {
			return err
		}
		dst.SetFloat(f)

	case reflect.Slice:
		elems, ok := src.Elements()
		if !ok {
			return errors.Errorf("expected a sequence, got a %s", src.Kind())
		}
		out := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
		for i, elem := range elems {
			if err := decodeField(elem, out.Index(i)); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		dst.Set(out)

	case reflect.Ptr:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return decodeField(src, dst.Elem())

	case reflect.Struct:
		if src.Kind() != toon.KindMapping {
			return errors.Errorf("expected a mapping, got a %s", src.Kind())
		}
		return decodeStruct(src, dst)

	default:
		return errors.Errorf("unsupported destination type %s", dst.Kind())
	}
	return nil
}

func scalarInt(src *toon.Value) (int64, error) {
	if n, ok := src.Integer(); ok {
		return n, nil
	}
	if d, ok := src.Decimal(); ok {
		return int64(d.Float64()), nil
	}
	return 0, errors.Errorf("expected a number, got a %s", src.Kind())
}

func scalarFloat(src *toon.Value) (float64, error) {
	if n, ok := src.Integer(); ok {
		return float64(n), nil
	}
	if d, ok := src.Decimal(); ok {
		return d.Float64(), nil
	}
	return 0, errors.Errorf("expected a number, got a %s", src.Kind())
}

func encodeStruct(src reflect.Value) (*toon.Value, error) {
	t := src.Type()
	m := toon.Mapping()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, ok := fieldName(f)
		if !ok {
			continue
		}
		val, err := encodeField(src.Field(i))
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", name)
		}
		m.Set(name, val)
	}
	return m, nil
}

func encodeField(src reflect.Value) (*toon.Value, error) {
	switch src.Kind() {
	case reflect.String:
		return toon.StringValue(src.String()), nil

	case reflect.Bool:
		return toon.Bool(src.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return toon.Integer(src.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return toon.Integer(int64(src.Uint())), nil

	case reflect.Float32, reflect.Float64:
		d, err := toon.NewDecimalFromString(strconv.FormatFloat(src.Float(), 'f', -1, 64))
		if err != nil {
			return nil, err
		}
		return toon.DecimalValue(d), nil

	case reflect.Slice, reflect.Array:
		elems := make([]*toon.Value, src.Len())
		for i := 0; i < src.Len(); i++ {
			v, err := encodeField(src.Index(i))
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			elems[i] = v
		}
		return toon.Sequence(elems...), nil

	case reflect.Ptr:
		if src.IsNil() {
			return toon.Null(), nil
		}
		return encodeField(src.Elem())

	case reflect.Struct:
		return encodeStruct(src)

	default:
		return nil, errors.Errorf("unsupported source type %s", src.Kind())
	}
}
