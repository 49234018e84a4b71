package encryption

import (
	"bytes"
	"fmt"
	"io"
)

const (
	headerMagic   = "GCTR"
	headerVersion = byte(1)

	headerFlagExec = 0x01
)

// Algorithm identifies the cipher variant recorded in a container header.
type Algorithm byte

const (
	algorithmAES128CTR Algorithm = 0x00
	algorithmAES192CTR Algorithm = 0x01
	algorithmAES256CTR Algorithm = 0x02
)

// HeaderSize is the fixed size of the container header that precedes the
// ciphertext: magic, version, algorithm, flags, then the 16-byte counter.
const HeaderSize = len(headerMagic) + 3 + CounterSize

// Header is the plaintext container header of an encrypted stream. It owns
// the persisted base counter; everything after it is ciphertext whose logical
// offsets start at zero.
type Header struct {
	Algorithm  Algorithm
	Executable bool
	Counter    Counter
}

// NewHeader builds a header for a key of the given length, with a freshly
// generated random counter.
func NewHeader(keyLength int, executable bool) (Header, error) {
	algorithm, err := algorithmForKeyLength(keyLength)
	if err != nil {
		return Header{}, err
	}

	return Header{
		Algorithm:  algorithm,
		Executable: executable,
		Counter:    RandomCounter(),
	}, nil
}

// CheckKey verifies that the key the caller intends to decrypt with matches
// the algorithm recorded in the header.
func (h Header) CheckKey(keyLength int) error {
	algorithm, err := algorithmForKeyLength(keyLength)
	if err != nil {
		return err
	}

	if algorithm != h.Algorithm {
		return fmt.Errorf("%w: stream uses %s but the key selects %s",
			ErrInvalidParameters, h.Algorithm, CipherName(keyLength))
	}

	return nil
}

// WriteTo serializes the header as exactly HeaderSize bytes.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, HeaderSize)

	buf = append(buf, headerMagic...)
	buf = append(buf, headerVersion)
	buf = append(buf, byte(h.Algorithm))

	var flags byte
	if h.Executable {
		flags |= headerFlagExec
	}

	buf = append(buf, flags)
	buf = append(buf, h.Counter.Bytes()...)

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("writing header: %w", err)
	}

	return int64(n), nil
}

// ReadFrom parses the header from exactly HeaderSize bytes.
func (h *Header) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, HeaderSize)

	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", ErrHeaderFormat, err)
	}

	if !bytes.Equal(buf[:len(headerMagic)], []byte(headerMagic)) {
		return int64(n), fmt.Errorf("%w: bad magic", ErrHeaderFormat)
	}

	if version := buf[len(headerMagic)]; version != headerVersion {
		return int64(n), fmt.Errorf("%w: unsupported version %d", ErrHeaderFormat, version)
	}

	algorithm := Algorithm(buf[len(headerMagic)+1])

	switch algorithm {
	case algorithmAES128CTR, algorithmAES192CTR, algorithmAES256CTR:
	default:
		return int64(n), fmt.Errorf("%w: unsupported algorithm %d", ErrHeaderFormat, algorithm)
	}

	flags := buf[len(headerMagic)+2]

	counter, err := CounterFromBytes(buf[len(headerMagic)+3:])
	if err != nil {
		return int64(n), err
	}

	h.Algorithm = algorithm
	h.Executable = flags&headerFlagExec != 0
	h.Counter = counter

	return int64(n), nil
}

// String returns the canonical cipher name, e.g. "aes-256-ctr".
func (a Algorithm) String() string {
	switch a {
	case algorithmAES128CTR:
		return CipherName(KeySize128)
	case algorithmAES192CTR:
		return CipherName(KeySize192)
	case algorithmAES256CTR:
		return CipherName(KeySize256)
	default:
		return "unknown"
	}
}

func algorithmForKeyLength(length int) (Algorithm, error) {
	switch length {
	case KeySize128:
		return algorithmAES128CTR, nil
	case KeySize192:
		return algorithmAES192CTR, nil
	case KeySize256:
		return algorithmAES256CTR, nil
	default:
		return 0, fmt.Errorf("%w: got %d bytes", ErrUnsupportedKeyLength, length)
	}
}
