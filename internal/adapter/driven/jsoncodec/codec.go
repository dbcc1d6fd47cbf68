// Package jsoncodec implements the Codec port using encoding/json.
package jsoncodec

import (
	"encoding/json"
	"fmt"

	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Codec = Codec{}

// Codec encodes structured secrets as compact JSON. It is stateless;
// the zero value is ready to use.
type Codec struct{}

// Encode marshals v to its JSON string form.
func (Codec) Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode secret: %w", err)
	}
	return string(data), nil
}

// Decode unmarshals data into v. Failures wrap driven.ErrMalformedSecret
// so callers can distinguish an occupied-but-invalid slot from absence.
func (Codec) Decode(data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("%w: %v", driven.ErrMalformedSecret, err)
	}
	return nil
}
