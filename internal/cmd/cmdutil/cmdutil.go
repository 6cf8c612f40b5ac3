// Package cmdutil holds helpers shared by the mikasa commands.
package cmdutil

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/internal/config"
	"github.com/open-cli-collective/mikasa/internal/convert"
	"github.com/open-cli-collective/mikasa/internal/view"
)

// ConfigPath returns the --config flag value or the default path.
func ConfigPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads the configuration for cmd, with environment overrides.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(ConfigPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// NewRenderer builds a view.Renderer from the global output flags.
func NewRenderer(cmd *cobra.Command) (*view.Renderer, error) {
	output, _ := cmd.Flags().GetString("output")
	if err := view.ValidateFormat(output); err != nil {
		return nil, err
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	r := view.NewRenderer(view.Format(output), noColor)
	r.SetWriter(cmd.OutOrStdout())
	return r, nil
}

// ConvertFlags are the conversion settings that can be given on the
// command line. Only flags the user set override the configuration.
type ConvertFlags struct {
	Src                  string
	Dest                 string
	Identifier           string
	Base                 string
	Languages            []string
	Application          string
	ShowErrors           bool
	EmphasiseTableHeader bool
	DummyHRule           bool
	Jobs                 int
}

// Register adds the conversion flags to cmd.
func (f *ConvertFlags) Register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.Src, "src", "", "source directory with one folder per language (default: ./data)")
	fl.StringVar(&f.Dest, "dest", "", "destination directory (default: ./help)")
	fl.StringVar(&f.Identifier, "id", "", "extension identifier")
	fl.StringVar(&f.Base, "base", "", "image base address rewritten below the identifier")
	fl.StringSliceVar(&f.Languages, "langs", nil, "languages to convert (default: all)")
	fl.StringVar(&f.Application, "application", "", "help tree application token (default: random)")
	fl.BoolVar(&f.ShowErrors, "show-errors", false, "render invalid macros and raw HTML visibly")
	fl.BoolVar(&f.EmphasiseTableHeader, "emphasise-table-header", true, "emphasise table header cells")
	fl.BoolVar(&f.DummyHRule, "dummy-hrule", false, "render horizontal rules as dummy paragraphs")
	fl.IntVar(&f.Jobs, "jobs", 0, "parallel conversions (default: number of CPUs)")

	_ = cmd.RegisterFlagCompletionFunc("langs", CompleteLanguages)
}

// Apply copies the flags the user changed onto cfg.
func (f *ConvertFlags) Apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("src") {
		cfg.Src = f.Src
	}
	if changed("dest") {
		cfg.Dest = f.Dest
	}
	if changed("id") {
		cfg.Identifier = f.Identifier
	}
	if changed("base") {
		cfg.Base = f.Base
	}
	if changed("langs") {
		cfg.Languages = f.Languages
	}
	if changed("application") {
		cfg.Application = f.Application
	}
	if changed("show-errors") {
		cfg.ShowErrors = f.ShowErrors
	}
	if changed("emphasise-table-header") {
		emphasise := f.EmphasiseTableHeader
		cfg.EmphasiseTableHeader = &emphasise
	}
	if changed("dummy-hrule") {
		cfg.DummyHRule = f.DummyHRule
	}
	if changed("jobs") {
		cfg.Jobs = f.Jobs
	}
}

// ConverterOptions maps a validated configuration onto driver options.
func ConverterOptions(cfg *config.Config, logger *slog.Logger) convert.Options {
	return convert.Options{
		Src:                  cfg.Src,
		Dest:                 cfg.Dest,
		Identifier:           cfg.Identifier,
		Base:                 cfg.Base,
		Languages:            cfg.Languages,
		Application:          cfg.Application,
		ShowErrors:           cfg.ShowErrors,
		EmphasiseTableHeader: cfg.EmphasiseHeader(),
		DummyHRule:           cfg.DummyHRule,
		Jobs:                 cfg.Jobs,
		Logger:               logger,
	}
}

// NewConverter loads the configuration, applies flags and validates the
// result before creating the driver.
func NewConverter(cmd *cobra.Command, flags *ConvertFlags) (*convert.Converter, *config.Config, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	flags.Apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w (run 'mikasa init' or pass --id)", err)
	}

	c, err := convert.New(ConverterOptions(cfg, slog.Default()))
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

// RenderResults prints conversion results in the renderer's format.
func RenderResults(r *view.Renderer, dest string, results []convert.Result) error {
	if r.Format() == view.FormatJSON {
		if results == nil {
			results = []convert.Result{}
		}
		return r.RenderJSON(results)
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{res.Lang, string(res.Dialect), view.RelPath(dest, res.Target)})
	}
	r.RenderTable([]string{"LANG", "DIALECT", "TARGET"}, rows)
	return nil
}

// CompleteLanguages offers the language folders of the configured source
// directory for shell completion.
func CompleteLanguages(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	if src, _ := cmd.Flags().GetString("src"); src != "" {
		cfg.Src = src
	}

	entries, err := os.ReadDir(cfg.Src)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// complete only the last element of a comma separated list
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var langs []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			langs = append(langs, prefix+entry.Name())
		}
	}
	return langs, cobra.ShellCompDirectiveNoFileComp
}
