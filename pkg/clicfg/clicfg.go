package clicfg

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/urfave/cli/v3"
)

const tagName = "flag"

var (
	ErrCannotParseFlags = errors.New("cannot parse flags")

	durationType = reflect.TypeOf(time.Duration(0))
)

// ParseFlags copies the flags of c into the exported fields of the struct s
// points to. Fields are matched by their `flag` tag, untagged fields are left
// alone.
func ParseFlags(c *cli.Command, s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: expected pointer to struct, got %T", ErrCannotParseFlags, s)
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got pointer to %s", ErrCannotParseFlags, v.Kind())
	}

	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		value := v.Field(i)

		name := field.Tag.Get(tagName)
		if name == "" || !value.CanSet() {
			continue
		}

		if err := set(c, name, value); err != nil {
			return fmt.Errorf("%w: field %s: %w", ErrCannotParseFlags, field.Name, err)
		}
	}

	return nil
}

func set(c *cli.Command, name string, value reflect.Value) error {
	// Durations are int64 underneath and must not be read as integers.
	if value.Type() == durationType {
		value.SetInt(int64(c.Duration(name)))
		return nil
	}

	switch value.Kind() {
	case reflect.String:
		value.SetString(c.String(name))
	case reflect.Bool:
		value.SetBool(c.Bool(name))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value.SetInt(int64(c.Int(name)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value.SetUint(uint64(c.Uint(name)))
	case reflect.Float32, reflect.Float64:
		value.SetFloat(c.Float64(name))
	default:
		return fmt.Errorf("unsupported type: %s", value.Type())
	}
	return nil
}
