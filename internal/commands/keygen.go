package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tink-crypto/tink-go/v2/subtle/random"

	"github.com/idelchi/goctr/internal/encryption"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen",
		Aliases: []string{"gen"},
		Short:   "Generate a new encryption key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			size, err := cmd.Flags().GetInt("size")
			if err != nil {
				return fmt.Errorf("reading size flag: %w", err)
			}

			if !encryption.IsKeyLengthSupported(size) {
				return fmt.Errorf("%w: got %d bytes", encryption.ErrUnsupportedKeyLength, size)
			}

			fmt.Println(hex.EncodeToString(random.GetRandomBytes(uint32(size)))) //nolint:forbidigo,gosec

			return nil
		},
	}

	cmd.Flags().IntP("size", "s", encryption.KeySize256, "Key size in bytes (16, 24 or 32)")

	return cmd
}
