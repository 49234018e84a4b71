package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/goctr/internal/logic"
)

// NewInfoCommand creates a new cobra command for the info subcommand.
// It needs no key: container headers are plaintext.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info files...",
		Short: "Show the container header of encrypted files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return logic.RunInfo(args)
		},
	}
}
