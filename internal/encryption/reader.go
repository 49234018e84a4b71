package encryption

import (
	"errors"
	"fmt"
	"io"
)

// decryptingReader gives random read access to the ciphertext of an
// encrypted container. It reads raw bytes through an io.ReaderAt and
// decrypts them at their logical offset, so seeking never requires
// decrypting anything before the target position.
type decryptingReader struct {
	r    io.ReaderAt
	enc  *Encryptor
	base int64 // where the ciphertext starts in r
	size int64 // ciphertext length
	pos  int64 // logical read position
}

var _ io.ReadSeeker = (*decryptingReader)(nil)

// newDecryptingReader creates a reader over the ciphertext of r, which
// starts base bytes in (past the container header) and is size bytes long.
func newDecryptingReader(r io.ReaderAt, enc *Encryptor, base, size int64) *decryptingReader {
	return &decryptingReader{r: r, enc: enc, base: base, size: size}
}

// Read implements io.Reader, decrypting at the current logical position.
func (dr *decryptingReader) Read(p []byte) (int, error) {
	if dr.pos >= dr.size {
		return 0, io.EOF
	}

	if remain := dr.size - dr.pos; int64(len(p)) > remain {
		p = p[:remain]
	}

	n, err := dr.r.ReadAt(p, dr.base+dr.pos)
	if n > 0 {
		dr.enc.SetOffset(dr.pos)
		dr.enc.Decrypt(p[:n], p[:n])
		dr.pos += int64(n)
	}

	if errors.Is(err, io.EOF) {
		// p was already capped to the remaining size, so EOF here means the
		// underlying data is shorter than declared. Returning (0, nil) would
		// break the io.Reader contract and spin io.Copy forever.
		if n == 0 {
			return 0, fmt.Errorf("reading ciphertext: %w", io.ErrUnexpectedEOF)
		}

		return n, nil
	}

	if err != nil {
		return n, fmt.Errorf("reading ciphertext: %w", err)
	}

	return n, nil
}

// Seek implements io.Seeker over the plaintext positions of the stream.
func (dr *decryptingReader) Seek(offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = dr.pos + offset
	case io.SeekEnd:
		pos = dr.size + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}

	if pos < 0 {
		return 0, errors.New("seek: negative position")
	}

	dr.pos = pos

	return pos, nil
}
