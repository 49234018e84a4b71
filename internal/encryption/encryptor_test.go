package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/tink-crypto/tink-go/v2/subtle/random"
)

func TestIsKeyLengthSupported(t *testing.T) {
	t.Parallel()

	supported := map[int]bool{KeySize128: true, KeySize192: true, KeySize256: true}

	for length := 0; length <= 64; length++ {
		if got := IsKeyLengthSupported(length); got != supported[length] {
			t.Errorf("IsKeyLengthSupported(%d) = %v, want %v", length, got, supported[length])
		}
	}
}

func TestNewEncryptorKeyLength(t *testing.T) {
	t.Parallel()

	for _, length := range []int{0, 1, 8, 15, 17, 23, 25, 31, 33, 64} {
		if _, err := NewEncryptor(make([]byte, length), Counter{}); !errors.Is(err, ErrUnsupportedKeyLength) {
			t.Errorf("NewEncryptor(%d-byte key) error = %v, want ErrUnsupportedKeyLength", length, err)
		}
	}

	for _, length := range []int{KeySize128, KeySize192, KeySize256} {
		if _, err := NewEncryptor(make([]byte, length), Counter{}); err != nil {
			t.Errorf("NewEncryptor(%d-byte key) error = %v, want nil", length, err)
		}
	}

	// The failure is part of the parameter-error taxonomy.
	if _, err := NewEncryptor(nil, Counter{}); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("NewEncryptor(nil key) error = %v, want ErrInvalidParameters", err)
	}
}

// encryptAt is a test helper that encrypts plaintext at the given offset
// with a fresh Encryptor.
func encryptAt(t *testing.T, key []byte, base Counter, offset int64, plaintext []byte) []byte {
	t.Helper()

	enc, err := NewEncryptor(key, base)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	enc.SetOffset(offset)

	var out bytes.Buffer

	if err := enc.Encrypt(plaintext, &out); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	return out.Bytes()
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	for _, keySize := range []int{KeySize128, KeySize192, KeySize256} {
		key := random.GetRandomBytes(uint32(keySize))
		base := RandomCounter()

		for _, offset := range []int64{0, 1, 15, 16, 17, 31, 32, 100, 4096} {
			for _, size := range []int{1, 15, 16, 17, 64, 1000} {
				t.Run(fmt.Sprintf("key%d_offset%d_size%d", keySize, offset, size), func(t *testing.T) {
					t.Parallel()

					plaintext := random.GetRandomBytes(uint32(size))

					ciphertext := encryptAt(t, key, base, offset, plaintext)
					if len(ciphertext) != len(plaintext) {
						t.Fatalf("ciphertext length = %d, want %d (no padding, ever)",
							len(ciphertext), len(plaintext))
					}

					dec, err := NewEncryptor(key, base)
					if err != nil {
						t.Fatalf("NewEncryptor: %v", err)
					}

					dec.SetOffset(offset)

					recovered := make([]byte, len(ciphertext))
					dec.Decrypt(recovered, ciphertext)

					if !bytes.Equal(recovered, plaintext) {
						t.Error("decrypt(encrypt(p)) != p")
					}
				})
			}
		}
	}
}

func TestEncryptDeterministic(t *testing.T) {
	t.Parallel()

	key := make([]byte, KeySize256)
	base := NewCounter(0, 7)
	plaintext := bytes.Repeat([]byte{0x42}, 100)

	first := encryptAt(t, key, base, 48, plaintext)
	second := encryptAt(t, key, base, 48, plaintext)

	if !bytes.Equal(first, second) {
		t.Error("same (key, counter, offset, data) produced different ciphertext")
	}
}

func TestDistinctCountersDistinctCiphertext(t *testing.T) {
	t.Parallel()

	key := make([]byte, KeySize256)
	plaintext := bytes.Repeat([]byte{0x42}, 64)

	first := encryptAt(t, key, NewCounter(0, 0), 0, plaintext)
	second := encryptAt(t, key, NewCounter(0, 1), 0, plaintext)

	if bytes.Equal(first, second) {
		t.Error("different base counters produced identical ciphertext")
	}
}

func TestSplitMergeEquivalence(t *testing.T) {
	t.Parallel()

	key := make([]byte, KeySize256)
	base := Counter{}
	plaintext := bytes.Repeat([]byte{'A'}, 20)

	whole := encryptAt(t, key, base, 0, plaintext)

	enc, err := NewEncryptor(key, base)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	var parts bytes.Buffer

	enc.SetOffset(0)

	if err := enc.Encrypt(plaintext[:16], &parts); err != nil {
		t.Fatalf("Encrypt first part: %v", err)
	}

	// Reset the offset explicitly between calls.
	enc.SetOffset(16)

	if err := enc.Encrypt(plaintext[16:], &parts); err != nil {
		t.Fatalf("Encrypt second part: %v", err)
	}

	if !bytes.Equal(parts.Bytes(), whole) {
		t.Errorf("split encryption = %x, whole encryption = %x", parts.Bytes(), whole)
	}

	// And the round trip back.
	dec, err := NewEncryptor(key, base)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	recovered := make([]byte, len(whole))
	dec.Decrypt(recovered, whole)

	if !bytes.Equal(recovered, plaintext) {
		t.Errorf("recovered = %q, want 20 'A' bytes", recovered)
	}
}

func TestOffsetAdvancesAcrossCalls(t *testing.T) {
	t.Parallel()

	key := random.GetRandomBytes(KeySize192)
	base := RandomCounter()
	plaintext := random.GetRandomBytes(123)

	whole := encryptAt(t, key, base, 0, plaintext)

	// Successive calls without SetOffset continue where the last one ended,
	// across non-aligned boundaries.
	enc, err := NewEncryptor(key, base)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	var parts bytes.Buffer

	for _, end := range []int{7, 16, 50, 123} {
		start := int(enc.Offset())

		if err := enc.Encrypt(plaintext[start:end], &parts); err != nil {
			t.Fatalf("Encrypt [%d:%d]: %v", start, end, err)
		}

		if enc.Offset() != int64(end) {
			t.Fatalf("Offset() = %d after writing up to %d", enc.Offset(), end)
		}
	}

	if !bytes.Equal(parts.Bytes(), whole) {
		t.Error("chunked encryption diverged from single-call encryption")
	}
}

func TestDecryptArbitraryRange(t *testing.T) {
	t.Parallel()

	key := random.GetRandomBytes(KeySize256)
	base := RandomCounter()
	plaintext := random.GetRandomBytes(256)

	ciphertext := encryptAt(t, key, base, 0, plaintext)

	// Decrypt a non-aligned slice in the middle without touching the rest.
	dec, err := NewEncryptor(key, base)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	const from, to = 21, 103

	dec.SetOffset(from)

	recovered := make([]byte, to-from)
	dec.Decrypt(recovered, ciphertext[from:to])

	if !bytes.Equal(recovered, plaintext[from:to]) {
		t.Error("range decryption diverged from original plaintext slice")
	}
}

// failingWriter fails every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink failure")
}

func TestEncryptWriteFailureKeepsOffset(t *testing.T) {
	t.Parallel()

	enc, err := NewEncryptor(make([]byte, KeySize128), Counter{})
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	enc.SetOffset(37)

	if err := enc.Encrypt([]byte("payload"), failingWriter{}); err == nil {
		t.Fatal("Encrypt with failing writer returned nil error")
	}

	if enc.Offset() != 37 {
		t.Errorf("Offset() = %d after failed call, want 37", enc.Offset())
	}
}
