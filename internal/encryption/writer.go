package encryption

import (
	"fmt"
	"io"
)

// encryptingWriter wraps an io.Writer with append-only CTR encryption.
// Plaintext written to it comes out of the underlying writer as ciphertext
// of exactly the same length. The Encryptor's offset cursor tracks how much
// has been written, so a stream can be reopened and appended to by seeding
// the cursor with the current ciphertext size.
type encryptingWriter struct {
	w   io.Writer
	enc *Encryptor
}

// newEncryptingWriter creates a writer that encrypts at the Encryptor's
// current offset. The caller is expected to have written the container
// header already.
func newEncryptingWriter(w io.Writer, enc *Encryptor) *encryptingWriter {
	return &encryptingWriter{w: w, enc: enc}
}

// Write implements io.Writer.
func (ew *encryptingWriter) Write(plaintext []byte) (int, error) {
	if err := ew.enc.Encrypt(plaintext, ew.w); err != nil {
		return 0, fmt.Errorf("encrypting stream: %w", err)
	}

	return len(plaintext), nil
}
