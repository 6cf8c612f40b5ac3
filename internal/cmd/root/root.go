// Package root provides the root command for the mikasa CLI.
package root

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/internal/cmd/configcmd"
	"github.com/open-cli-collective/mikasa/internal/cmd/convertcmd"
	"github.com/open-cli-collective/mikasa/internal/cmd/importcmd"
	initcmd "github.com/open-cli-collective/mikasa/internal/cmd/init"
	"github.com/open-cli-collective/mikasa/internal/cmd/render"
	"github.com/open-cli-collective/mikasa/internal/cmd/watch"
	"github.com/open-cli-collective/mikasa/internal/version"
)

// NewCmdRoot creates the root command for mikasa.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mikasa",
		Short: "Convert markdown help sources to XHP help files",
		Long: `mikasa converts an extension's markdown help pages into XHP documents
and help trees, one folder per language.

Get started by running: mikasa init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mikasa/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log every converted file")

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(convertcmd.NewCmdConvert())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(watch.NewCmdWatch())
	cmd.AddCommand(importcmd.NewCmdImport())

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
