package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/goctr/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := unmarshalConfig(args)
			if err != nil {
				return err
			}

			cfg.Decrypt = true

			return logic.Run(cfg)
		},
	}
}
