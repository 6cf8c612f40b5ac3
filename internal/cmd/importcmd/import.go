// Package importcmd provides the import command.
package importcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/pkg/md"
)

type importOptions struct {
	write      string
	dropMacros bool
	force      bool
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Convert an HTML help page to markdown source",
		Long: `Convert an existing HTML help page into markdown that mikasa can render.

Macro comments such as <!-- {{Tip|...}} --> are kept as standalone blocks
unless --drop-macros is given.`,
		Example: `  # Print markdown to stdout
  mikasa import legacy/intro.html

  # Write into the source tree
  mikasa import legacy/intro.html -w data/en/intro.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.write, "write", "w", "", "write markdown to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.dropMacros, "drop-macros", false, "remove macro comments")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func runImport(w io.Writer, path string, opts *importOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	markdown, err := md.FromHTML(string(data), md.ImportOptions{DropMacros: opts.dropMacros})
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", path, err)
	}

	if opts.write == "" {
		_, err := fmt.Fprintln(w, markdown)
		return err
	}

	if !opts.force {
		if _, err := os.Stat(opts.write); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", opts.write)
		}
	}
	if err := os.MkdirAll(filepath.Dir(opts.write), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(opts.write, []byte(markdown+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.write, err)
	}

	fmt.Fprintf(w, "Imported %s to %s\n", path, opts.write)
	return nil
}
