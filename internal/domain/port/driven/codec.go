package driven

import "errors"

// ErrMalformedSecret indicates a resolved raw value failed to decode into
// the requested structured type. The slot is occupied, but by data the
// caller's type cannot represent. Kept distinct from ErrSecretNotFound so
// callers can decide between treating it as corruption and overwriting.
var ErrMalformedSecret = errors.New("secret payload is malformed")

// Codec defines the driven port for structured secret serialization.
// The encoded form's grammar belongs entirely to the adapter; managers
// treat it as an opaque string.
type Codec interface {
	Encode(v any) (string, error)

	// Decode unmarshals data into v. Decode failures are reported
	// wrapping ErrMalformedSecret.
	Decode(data string, v any) error
}
