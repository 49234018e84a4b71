package encryption

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters covers every configuration or format error raised by
// this package: bad key material, malformed counters, malformed container
// headers. These indicate programmer or configuration error and are never
// retried.
var ErrInvalidParameters = errors.New("invalid encryption parameters")

var (
	// ErrUnsupportedKeyLength is returned when a key is not 16, 24 or 32 bytes.
	ErrUnsupportedKeyLength = fmt.Errorf("%w: key length must be 16, 24 or 32 bytes", ErrInvalidParameters)

	// ErrCounterFormat is returned when a serialized counter is not exactly 16 bytes.
	ErrCounterFormat = fmt.Errorf("%w: counter must be exactly 16 bytes", ErrInvalidParameters)

	// ErrHeaderFormat is returned when a container header is malformed.
	ErrHeaderFormat = fmt.Errorf("%w: malformed container header", ErrInvalidParameters)
)
