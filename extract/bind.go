package extract

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// setScalar assigns the string s to a settable reflect value of a basic
// kind, converting with strconv. Pointer targets are allocated first, so
// pointer struct fields behave as optional.
func setScalar(rv reflect.Value, s string) error {
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse %q as %s: %w", s, rv.Kind(), err)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse %q as %s: %w", s, rv.Kind(), err)
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse %q as %s: %w", s, rv.Kind(), err)
		}
		rv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("parse %q as bool: %w", s, err)
		}
		rv.SetBool(b)
	default:
		return fmt.Errorf("unsupported target type %s", rv.Type())
	}
	return nil
}

// bindStruct fills the exported fields of the struct pointed to by v from
// lookup, using the given tag for field names. An untagged field binds
// under its lower-cased name; a "-" tag skips it. Missing values fail for
// value fields and are ignored for pointer fields.
func bindStruct(v reflect.Value, tag string, lookup func(name string) (string, bool)) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get(tag)
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		raw, ok := lookup(name)
		if !ok {
			if field.Type.Kind() == reflect.Pointer {
				continue
			}
			return fmt.Errorf("missing %s parameter %q", tag, name)
		}

		if err := setScalar(v.Field(i), raw); err != nil {
			return err
		}
	}
	return nil
}
