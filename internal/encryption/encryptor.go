package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// Encryptor encrypts or decrypts byte ranges of a logical stream without
// touching the rest of it. CTR mode is used because it never pads (one input
// byte is always one output byte, so encrypted streams can be appended to
// without re-encryption) and because any absolute offset can be transformed
// independently, which gives random access to encrypted data.
//
// Every call re-derives its keystream from (base counter, offset), so calls
// are self-contained and arbitrary seeks between calls are safe. The offset
// cursor is the only mutable state; an Encryptor must not be shared between
// goroutines without external locking. Separate instances over disjoint
// offset ranges of the same stream are safe.
type Encryptor struct {
	block  cipher.Block
	base   Counter
	offset int64
}

// NewEncryptor creates an Encryptor for the given key and base counter.
// The key must be 16, 24 or 32 bytes, selecting AES-128, AES-192 or
// AES-256 in CTR mode. The key schedule is initialized once here and reused
// for every subsequent call.
func NewEncryptor(key []byte, base Counter) (*Encryptor, error) {
	if !IsKeyLengthSupported(len(key)) {
		return nil, fmt.Errorf("%w: got %d bytes", ErrUnsupportedKeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	return &Encryptor{block: block, base: base}, nil
}

// SetOffset sets the absolute position in the stream, counted from the very
// beginning of the data, used by the next Encrypt or Decrypt call. It
// determines the counter value and the intra-block position the keystream is
// derived from. The offset must be non-negative. Pure bookkeeping; no cipher
// invocation happens here.
func (e *Encryptor) SetOffset(offset int64) {
	e.offset = offset
}

// Offset returns the absolute position used by the next call.
func (e *Encryptor) Offset() int64 {
	return e.offset
}

// keystream returns a CTR stream positioned exactly at the current offset.
// The counter is advanced by the index of the block containing the offset,
// then the keystream bytes before the offset within that block are discarded.
func (e *Encryptor) keystream() cipher.Stream {
	blockIndex := uint64(e.offset) / aes.BlockSize
	intra := e.offset % aes.BlockSize

	stream := cipher.NewCTR(e.block, e.base.Add(blockIndex).Bytes())

	if intra != 0 {
		skip := make([]byte, intra)
		stream.XORKeyStream(skip, skip)
	}

	return stream
}

// Encrypt transforms all of plaintext at the current offset and writes the
// resulting ciphertext to out. The output is always exactly len(plaintext)
// bytes. The offset moves by len(plaintext) on success only; a write failure
// leaves the cursor untouched.
func (e *Encryptor) Encrypt(plaintext []byte, out io.Writer) error {
	ciphertext := make([]byte, len(plaintext))
	e.keystream().XORKeyStream(ciphertext, plaintext)

	if _, err := out.Write(ciphertext); err != nil {
		return fmt.Errorf("writing ciphertext: %w", err)
	}

	e.offset += int64(len(plaintext))

	return nil
}

// Decrypt transforms all of ciphertext at the current offset into dst, which
// must be at least len(ciphertext) bytes. CTR is symmetric, so the counter
// derivation and keystream XOR are identical to Encrypt. The offset moves by
// len(ciphertext).
func (e *Encryptor) Decrypt(dst, ciphertext []byte) {
	e.keystream().XORKeyStream(dst[:len(ciphertext)], ciphertext)

	e.offset += int64(len(ciphertext))
}
