package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goctr/internal/config"
	"github.com/idelchi/goctr/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := unmarshalConfig(args)
			if err != nil {
				return err
			}

			return logic.Run(cfg)
		},
	}
}

// unmarshalConfig resolves the bound flags and environment variables into a
// validated configuration with args as the positional file list.
func unmarshalConfig(args []string) (*config.Config, error) {
	var cfg config.Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Files = args

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
