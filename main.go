// Command goctr encrypts and decrypts files with seekable AES-CTR.
package main

import (
	"os"

	"github.com/idelchi/goctr/internal/commands"
)

// version is set at build time via -ldflags.
var version = "dev" //nolint:gochecknoglobals

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
