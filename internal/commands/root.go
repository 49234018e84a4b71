package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "goctr [flags] command [flags]",
		Short: "Seekable file encryption utility",
		Long: `A file encryption utility built on seekable AES-CTR.
Encrypted files carry no padding and support random access decryption
of arbitrary byte ranges. Provides commands for key generation,
encryption, decryption, and header inspection.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetEnvPrefix("goctr")
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()

			if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
				return fmt.Errorf("binding root flags: %w", err)
			}

			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding command flags: %w", err)
			}

			return nil
		},
	}

	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("delete", false, "Delete the original file after successful encryption/decryption")
	root.PersistentFlags().Bool("dry", false, "Preview which files would be processed without touching them")
	root.PersistentFlags().Bool("stats", false, "Print processing statistics on exit")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Carry the input file's timestamps over to the output")

	root.PersistentFlags().StringP("key", "k", "", "Encryption key (16, 24 or 32 bytes, hex-encoded)")
	root.PersistentFlags().StringP("key-file", "f", "", "Path to a file holding the hex-encoded encryption key")

	root.PersistentFlags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	root.PersistentFlags().String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.PersistentFlags().StringSliceP("include", "i", nil, "Only process files matching these patterns (find -path semantics)")
	root.PersistentFlags().StringSliceP("exclude", "e", nil, "Skip files matching these patterns")
	root.PersistentFlags().String("include-from", "", "Read include patterns from a JSONC file")
	root.PersistentFlags().String("exclude-from", "", "Read exclude patterns from a JSONC file")

	root.AddCommand(NewEncryptCommand(), NewDecryptCommand(), NewKeygenCommand(), NewInfoCommand())

	return root
}
