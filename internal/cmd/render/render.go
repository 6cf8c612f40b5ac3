// Package render provides the render command.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mikasa/internal/config"
	"github.com/open-cli-collective/mikasa/internal/convert"
	"github.com/open-cli-collective/mikasa/pkg/md"
)

type renderOptions struct {
	dialect  string
	lang     string
	fileName string
	flags    cmdutil.ConvertFlags
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file.md>",
		Short: "Render one markdown file to stdout",
		Long: `Render a single markdown file without writing anything to disk.

The dialect defaults to tree for help.md and xhp for every other file.`,
		Example: `  # Preview a page
  mikasa render data/en/intro.md

  # Preview the navigation tree
  mikasa render data/en/help.md --dialect tree --application abcde`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.flags.Apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w (run 'mikasa init' or pass --id)", err)
			}
			return runRender(cmd.OutOrStdout(), args[0], opts, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.dialect, "dialect", "", "output dialect: xhp or tree (default: from file name)")
	cmd.Flags().StringVar(&opts.lang, "lang", "en", "document language")
	cmd.Flags().StringVar(&opts.fileName, "name", "", "file name recorded in the XHP metadata (default: <file>.xhp)")
	opts.flags.Register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("dialect", cobra.FixedCompletions(
		[]string{string(convert.DialectXHP), string(convert.DialectTree)}, cobra.ShellCompDirectiveNoFileComp))
	for _, name := range []string{"src", "dest", "langs", "jobs"} {
		_ = cmd.Flags().MarkHidden(name)
	}

	return cmd
}

func runRender(w io.Writer, path string, opts *renderOptions, cfg *config.Config) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	dialect, err := resolveDialect(opts.dialect, path)
	if err != nil {
		return err
	}

	var out string
	switch dialect {
	case convert.DialectTree:
		app := cfg.Application
		if app == "" {
			app = md.NewApplicationToken(nil)
		}
		out = md.ToTree(source, md.TreeOptions{Identifier: cfg.Identifier, Application: app})
	default:
		fileName := opts.fileName
		if fileName == "" {
			fileName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + md.TargetSuffix
		}
		out = md.ToXHP(source, md.XhpOptions{
			Identifier:           cfg.Identifier,
			BaseAddr:             cfg.Base,
			ShowErrors:           cfg.ShowErrors,
			EmphasiseTableHeader: cfg.EmphasiseHeader(),
			UseDummyHRule:        cfg.DummyHRule,
		}, md.Document{FileName: fileName, Lang: opts.lang})
	}

	_, err = fmt.Fprintln(w, out)
	return err
}

func resolveDialect(flag, path string) (convert.Dialect, error) {
	switch convert.Dialect(flag) {
	case convert.DialectXHP, convert.DialectTree:
		return convert.Dialect(flag), nil
	case "":
		if filepath.Base(path) == convert.TreeSourceName {
			return convert.DialectTree, nil
		}
		return convert.DialectXHP, nil
	default:
		return "", fmt.Errorf("invalid dialect %q (valid: xhp, tree)", flag)
	}
}
