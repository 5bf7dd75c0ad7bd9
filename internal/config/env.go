package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix namespaces the env overrides. VOC_JWT_SECRET wins over JWT_SECRET
// so the API can share a host environment with other services.
const EnvPrefix = "VOC_"

var durationType = reflect.TypeOf(time.Duration(0))

// lookupEnv returns the prefixed variable when set, else the bare one
func lookupEnv(name string) (string, bool) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		return v, true
	}
	return os.LookupEnv(name)
}

// processStructFields applies `env:"..."` overrides to every tagged field of s,
// descending into the nested config sections. All bad values are reported.
func processStructFields(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	var errs []error
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field, meta := val.Field(i), typ.Field(i)

		if field.Kind() == reflect.Struct {
			if err := processStructFields(field.Addr().Interface()); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		name := meta.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := lookupEnv(name)
		if !ok {
			continue
		}
		if err := setFieldFromEnv(field, raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// setFieldFromEnv parses raw into field according to its kind
func setFieldFromEnv(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return errors.New("field cannot be set")
	}

	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid duration %q", raw)
		}
		field.SetInt(int64(d))
	case field.Kind() == reflect.String:
		field.SetString(raw)
	case field.CanInt():
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
