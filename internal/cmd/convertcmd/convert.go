// Package convertcmd provides the convert command.
package convertcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mikasa/internal/convert"
	"github.com/open-cli-collective/mikasa/internal/view"
)

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	flags := &cmdutil.ConvertFlags{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert markdown help sources to XHP",
		Long: `Convert every markdown file below <src>/<lang>/ into help files.

help.md files become navigation trees at <dest>/<lang>/help.tree. Every
other markdown file becomes an XHP page at <dest>/<lang>/<id>/<name>.xhp.`,
		Example: `  # Convert using the saved configuration
  mikasa convert

  # Convert English and German only
  mikasa convert --id org.example.ext --langs en,de

  # Machine readable results
  mikasa convert -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := cmdutil.NewRenderer(cmd)
			if err != nil {
				return err
			}
			c, cfg, err := cmdutil.NewConverter(cmd, flags)
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), c, cfg.Dest, r)
		},
	}

	flags.Register(cmd)
	return cmd
}

func runConvert(ctx context.Context, c *convert.Converter, dest string, r *view.Renderer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := c.Run(ctx)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := cmdutil.RenderResults(r, dest, results); err != nil {
		return err
	}
	if r.Format() == view.FormatTable {
		r.Success(fmt.Sprintf("Converted %d files into %s (application %s)", len(results), dest, c.Application()))
	}
	return nil
}
