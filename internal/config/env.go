package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// truthyValues are the spellings accepted as true for boolean flags such as
// POSTGRES_REPOSITORY_READY. Anything else, including garbage, reads as false.
var truthyValues = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
	"on":   true,
}

// isTruthy reports whether an env value turns a flag on
func isTruthy(value string) bool {
	return truthyValues[strings.ToLower(strings.TrimSpace(value))]
}

// applyEnvOverrides replaces every field carrying an `env` tag whose variable
// is set. Durations are stored as strings and parsed later by the accessors,
// so only string, int and bool fields occur.
func applyEnvOverrides(section reflect.Value) error {
	if section.Kind() == reflect.Ptr {
		section = section.Elem()
	}

	sectionType := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		spec := sectionType.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field); err != nil {
				return err
			}
			continue
		}

		name := spec.Tag.Get("env")
		if name == "" {
			continue
		}
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Bool:
			field.SetBool(isTruthy(value))
		case reflect.Int:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("env %s: invalid integer %q", name, value)
			}
			field.SetInt(int64(n))
		default:
			return fmt.Errorf("env %s: unsupported field %s of kind %s", name, spec.Name, field.Kind())
		}
	}
	return nil
}
