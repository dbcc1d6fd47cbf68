package application

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// fieldSpec describes one promptable field of a structured secret type.
type fieldSpec struct {
	label string // JSON tag name when present, else the Go field name.
	index int
	kind  reflect.Kind
}

// structFields derives the promptable fields of t in declared order.
// Unexported fields and fields tagged `json:"-"` are skipped. Supported
// kinds are strings, booleans, integers, and floats; anything else is
// rejected before any prompting happens, as is a non-struct t.
func structFields(t reflect.Type) ([]fieldSpec, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("structured secret type %s is not a struct", t)
	}

	var specs []fieldSpec
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		label := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				label = name
			}
		}

		switch f.Type.Kind() {
		case reflect.String, reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
		default:
			return nil, fmt.Errorf("structured secret field %s has unsupported kind %s", f.Name, f.Type.Kind())
		}

		specs = append(specs, fieldSpec{label: label, index: i, kind: f.Type.Kind()})
	}
	return specs, nil
}

// promptStruct collects one value per promptable field of T and returns
// the assembled value. Field order is declaration order.
func promptStruct[T any](prompter driven.Prompter) (T, error) {
	var value T
	rv := reflect.ValueOf(&value).Elem()

	specs, err := structFields(rv.Type())
	if err != nil {
		var zero T
		return zero, err
	}

	for _, spec := range specs {
		if err := promptField(prompter, rv.Field(spec.index), spec); err != nil {
			var zero T
			return zero, err
		}
	}
	return value, nil
}

// promptField reads one field value, re-prompting with the expected form
// appended to the label until the input parses. Prompt failures surface
// immediately so a closed input stream cannot loop forever.
func promptField(prompter driven.Prompter, field reflect.Value, spec fieldSpec) error {
	label := spec.label
	for {
		input, err := prompter.Prompt(label)
		if err != nil {
			return err
		}
		if err := assignField(field, input); err == nil {
			return nil
		}
		label = fmt.Sprintf("%s (%s)", spec.label, expectedInput(spec.kind))
	}
}

// assignField parses input into the field according to its kind.
func assignField(field reflect.Value, input string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(input)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(strings.ToLower(input))
		if err != nil {
			return err
		}
		field.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(input, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(input, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(input, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
		return nil
	}

	return fmt.Errorf("unsupported kind %s", field.Kind())
}

// expectedInput names the form re-prompts ask for.
func expectedInput(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "true/false"
	case reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "integer"
	}
}
