package logic

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/goctr/internal/encryption"
)

// RunInfo prints the container header of each encrypted file: the cipher it
// was encrypted with, its base counter, and the payload size. Headers are
// plaintext, so no key is required.
func RunInfo(files []string) error {
	var failures int

	for _, file := range files {
		if err := printInfo(file); err != nil {
			failures++

			fmt.Fprintf(os.Stderr, "Error inspecting %q: %v\n", file, err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d file(s) could not be inspected", failures)
	}

	return nil
}

// printInfo parses and prints a single container header.
func printInfo(filename string) error {
	f, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var header encryption.Header

	if _, err := header.ReadFrom(f); err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("getting file info: %w", err)
	}

	payload := max(0, info.Size()-int64(encryption.HeaderSize))

	//nolint:forbidigo,gosec // command output; payload is non-negative
	fmt.Printf("%s:\n  Algorithm:  %s\n  Counter:    %s\n  Executable: %t\n  Payload:    %s\n",
		filename, header.Algorithm, header.Counter, header.Executable, humanize.IBytes(uint64(payload)))

	return nil
}
