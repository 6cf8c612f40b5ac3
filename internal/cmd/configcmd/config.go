// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// envVars lists every environment variable mikasa reads.
var envVars = []string{
	"MIKASA_ID", "MIKASA_BASE", "MIKASA_SRC", "MIKASA_DEST", "MIKASA_LANGS",
	"MIKASA_APPLICATION", "MIKASA_SHOW_ERRORS", "MIKASA_EMPHASISE_TABLE_HEADER",
	"MIKASA_DUMMY_HRULE", "MIKASA_JOBS",
}

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mikasa configuration",
		Long:  `Commands for viewing, testing, and clearing mikasa configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}
