// Package watch provides the watch command.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mikasa/internal/convert"
	"github.com/open-cli-collective/mikasa/internal/view"
)

// NewCmdWatch creates the watch command.
func NewCmdWatch() *cobra.Command {
	flags := &cmdutil.ConvertFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert, then reconvert sources as they change",
		Long: `Convert every help source once, then watch the source directory and
reconvert each markdown file when it is saved. Stop with Ctrl-C.`,
		Example: `  # Watch with the saved configuration
  mikasa watch

  # Slower editors may need a longer settle time
  mikasa watch --debounce 1s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := cmdutil.NewRenderer(cmd)
			if err != nil {
				return err
			}
			c, cfg, err := cmdutil.NewConverter(cmd, flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, c, cfg.Dest, debounce, r)
		},
	}

	flags.Register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", convert.DefaultDebounce, "time to wait for edits to settle")

	return cmd
}

func runWatch(ctx context.Context, c *convert.Converter, dest string, debounce time.Duration, r *view.Renderer) error {
	results, err := c.Run(ctx)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	r.Success(fmt.Sprintf("Converted %d files into %s", len(results), dest))

	return c.Watch(ctx, debounce, func(res convert.Result, err error) {
		if err != nil {
			r.Error(err.Error())
			return
		}
		r.Success(fmt.Sprintf("%s updated", view.RelPath(dest, res.Target)))
	})
}
