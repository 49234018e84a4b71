package encryption

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/tink-crypto/tink-go/v2/subtle/random"
)

// CounterSize is the serialized size of a Counter in bytes.
const CounterSize = 16

// Counter is the 128-bit CTR counter of an encrypted stream, doubling as its
// initialization vector. It is persisted once in the container header and
// advanced per cipher block during transforms.
//
// The wire format is exactly 16 bytes, big endian, because the CTR cipher
// algorithms treat the initialization vector as a big-endian counter.
// Arithmetic wraps modulo 2^128.
type Counter struct {
	hi, lo uint64
}

// NewCounter creates a counter from its high and low 64-bit halves.
func NewCounter(hi, lo uint64) Counter {
	return Counter{hi: hi, lo: lo}
}

// RandomCounter generates a counter from a cryptographically secure random
// source. Counter values double as nonces, so anything weaker than a CSPRNG
// here is a security bug, not a quality issue.
func RandomCounter() Counter {
	buf := random.GetRandomBytes(CounterSize)

	counter, _ := CounterFromBytes(buf)

	return counter
}

// CounterFromBytes parses a counter from its 16-byte big-endian form.
func CounterFromBytes(data []byte) (Counter, error) {
	if len(data) != CounterSize {
		return Counter{}, fmt.Errorf("%w: got %d bytes", ErrCounterFormat, len(data))
	}

	return Counter{
		hi: binary.BigEndian.Uint64(data[:8]),
		lo: binary.BigEndian.Uint64(data[8:]),
	}, nil
}

// Uint64s returns the high and low 64-bit halves of the counter.
func (c Counter) Uint64s() (hi, lo uint64) {
	return c.hi, c.lo
}

// Bytes returns the 16-byte big-endian form of the counter.
func (c Counter) Bytes() []byte {
	buf := make([]byte, CounterSize)

	binary.BigEndian.PutUint64(buf[:8], c.hi)
	binary.BigEndian.PutUint64(buf[8:], c.lo)

	return buf
}

// String returns the counter as lowercase hex, for diagnostics only.
func (c Counter) String() string {
	return hex.EncodeToString(c.Bytes())
}

// Add returns the counter advanced by n, wrapping modulo 2^128.
func (c Counter) Add(n uint64) Counter {
	lo := c.lo + n
	hi := c.hi

	if lo < c.lo {
		hi++
	}

	return Counter{hi: hi, lo: lo}
}

// Incr returns the counter advanced by one, wrapping modulo 2^128.
func (c Counter) Incr() Counter {
	return c.Add(1)
}

// WriteTo serializes the counter as exactly 16 big-endian bytes.
func (c Counter) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("writing counter: %w", err)
	}

	return int64(n), nil
}

// ReadFrom parses the counter from exactly 16 big-endian bytes.
// Fewer available bytes is a format error.
func (c *Counter) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, CounterSize)

	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", ErrCounterFormat, err)
	}

	parsed, err := CounterFromBytes(buf)
	if err != nil {
		return int64(n), err
	}

	*c = parsed

	return int64(n), nil
}
