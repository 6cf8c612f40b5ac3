package configcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mikasa/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check the configuration and source directory",
		Long:  `Validate the configuration and list the markdown sources mikasa would convert.`,
		Example: `  # Test configuration
  mikasa config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runTest(cmd.OutOrStdout(), noColor, cfg)
		},
	}

	return cmd
}

func runTest(w io.Writer, noColor bool, cfg *config.Config) error {
	if noColor {
		color.NoColor = true
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if err := cfg.Validate(); err != nil {
		_, _ = red.Fprintln(w, "✗ Invalid configuration:", err)
		fmt.Fprintln(w, "\nReconfigure with: mikasa init")
		return fmt.Errorf("invalid config: %w", err)
	}
	_, _ = green.Fprintln(w, "✓ Configuration valid")

	info, err := os.Stat(cfg.Src)
	if err != nil || !info.IsDir() {
		_, _ = red.Fprintf(w, "✗ Source directory %s not found\n", cfg.Src)
		return fmt.Errorf("source directory %s not found", cfg.Src)
	}

	counts, err := countSources(cfg.Src)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		_, _ = red.Fprintf(w, "✗ No language folders in %s\n", cfg.Src)
		return fmt.Errorf("no language folders in %s", cfg.Src)
	}

	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	_, _ = green.Fprintf(w, "✓ Source directory %s\n", cfg.Src)
	for _, lang := range langs {
		fmt.Fprintf(w, "  %-8s %d markdown files\n", lang, counts[lang])
	}
	for _, lang := range cfg.Languages {
		if _, ok := counts[lang]; !ok {
			_, _ = red.Fprintf(w, "✗ Configured language %s has no folder\n", lang)
		}
	}

	return nil
}

// countSources counts markdown files per language folder below src.
func countSources(src string) (map[string]int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", src, err)
	}

	counts := map[string]int{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		n := 0
		err := filepath.WalkDir(filepath.Join(src, entry.Name()), func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ".md" {
				n++
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		counts[entry.Name()] = n
	}
	return counts, nil
}
