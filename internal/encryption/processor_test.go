package encryption

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tink-crypto/tink-go/v2/subtle/random"

	"github.com/idelchi/goctr/internal/config"
)

func newTestConfig(files []string) *config.Config {
	return &config.Config{
		Key:           strings.Repeat("ab", KeySize256),
		Parallel:      2,
		EncryptSuffix: ".enc",
		Quiet:         true,
		Files:         files,
	}
}

func TestProcessorEncryptDecryptFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	contents := map[string][]byte{
		"small.txt": []byte("hello"),
		"empty.bin": {},
		"large.bin": random.GetRandomBytes(100_000),
	}

	var files []string

	for name, data := range contents {
		path := filepath.Join(dir, name)

		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		files = append(files, path)
	}

	// Encrypt.
	cfg := newTestConfig(files)

	proc, err := NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	processed, errored, _, err := proc.ProcessFiles()
	if err != nil {
		t.Fatalf("ProcessFiles: %v", err)
	}

	if processed != len(files) || errored != 0 {
		t.Fatalf("processed = %d, errored = %d", processed, errored)
	}

	for name, data := range contents {
		encrypted, err := os.ReadFile(filepath.Join(dir, name+".enc"))
		if err != nil {
			t.Fatalf("reading encrypted output: %v", err)
		}

		if len(encrypted) != HeaderSize+len(data) {
			t.Errorf("%s: encrypted size = %d, want header + %d bytes", name, len(encrypted), len(data))
		}

		if len(data) > 0 && bytes.Contains(encrypted, data) {
			t.Errorf("%s: plaintext visible in encrypted output", name)
		}
	}

	// Decrypt into fresh names and compare.
	var encryptedFiles []string

	for name := range contents {
		encryptedFiles = append(encryptedFiles, filepath.Join(dir, name+".enc"))
	}

	decCfg := newTestConfig(encryptedFiles)
	decCfg.Decrypt = true
	decCfg.DecryptSuffix = ".out"

	proc, err = NewProcessor(decCfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	if _, errored, _, err := proc.ProcessFiles(); err != nil || errored != 0 {
		t.Fatalf("ProcessFiles (decrypt): errored = %d, err = %v", errored, err)
	}

	for name, data := range contents {
		recovered, err := os.ReadFile(filepath.Join(dir, name+".out"))
		if err != nil {
			t.Fatalf("reading decrypted output: %v", err)
		}

		if !bytes.Equal(recovered, data) {
			t.Errorf("%s: decrypted contents diverged from original", name)
		}
	}
}

func TestProcessorDecryptWrongKeyLength(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")

	if err := os.WriteFile(path, []byte("payload"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg := newTestConfig([]string{path})

	proc, err := NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	if _, _, _, err := proc.ProcessFiles(); err != nil {
		t.Fatalf("ProcessFiles: %v", err)
	}

	// A 16-byte key cannot open a stream encrypted with a 32-byte key.
	decCfg := newTestConfig([]string{path + ".enc"})
	decCfg.Key = strings.Repeat("ab", KeySize128)
	decCfg.Decrypt = true

	proc, err = NewProcessor(decCfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	if _, errored, _, err := proc.ProcessFiles(); err == nil || errored != 1 {
		t.Errorf("decrypting with mismatched key length: errored = %d, err = %v", errored, err)
	}
}

func TestNewProcessorRejectsBadKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		want error
	}{
		{name: "unsupported_length", key: strings.Repeat("ab", 20), want: ErrUnsupportedKeyLength},
		{name: "empty", key: "", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := newTestConfig([]string{"whatever"})
			cfg.Key = tc.key

			_, err := NewProcessor(cfg)
			if err == nil {
				t.Fatal("NewProcessor returned nil error")
			}

			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("NewProcessor error = %v, want %v", err, tc.want)
			}
		})
	}
}
