package encryption

const (
	// KeySize128 selects AES-128-CTR.
	KeySize128 = 16
	// KeySize192 selects AES-192-CTR.
	KeySize192 = 24
	// KeySize256 selects AES-256-CTR.
	KeySize256 = 32
)

// IsKeyLengthSupported reports whether a key of the given byte length can be
// used for encryption, i.e. whether it selects one of the three AES variants.
func IsKeyLengthSupported(length int) bool {
	switch length {
	case KeySize128, KeySize192, KeySize256:
		return true
	default:
		return false
	}
}

// CipherName returns the cipher selected by a key of the given byte length,
// or "unknown" for unsupported lengths.
func CipherName(length int) string {
	switch length {
	case KeySize128:
		return "aes-128-ctr"
	case KeySize192:
		return "aes-192-ctr"
	case KeySize256:
		return "aes-256-ctr"
	default:
		return "unknown"
	}
}
