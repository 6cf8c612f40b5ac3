package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mikasa/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective mikasa configuration with source indicators.`,
		Example: `  # Show current config
  mikasa config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), cmdutil.ConfigPath(cmd), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-18s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		fmt.Fprint(w, value)

		source := "default"
		switch {
		case os.Getenv(envVar) != "":
			source = envVar
		case fileErr == nil && fileValue != "":
			source = "config"
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	fileEmphasis := ""
	if fileCfg.EmphasiseTableHeader != nil {
		fileEmphasis = strconv.FormatBool(*fileCfg.EmphasiseTableHeader)
	}

	printField("Identifier", cfg.Identifier, fileCfg.Identifier, "MIKASA_ID")
	printField("Image base", cfg.Base, fileCfg.Base, "MIKASA_BASE")
	printField("Source", cfg.Src, fileCfg.Src, "MIKASA_SRC")
	printField("Destination", cfg.Dest, fileCfg.Dest, "MIKASA_DEST")
	printField("Languages", strings.Join(cfg.Languages, ","), strings.Join(fileCfg.Languages, ","), "MIKASA_LANGS")
	printField("Application", cfg.Application, fileCfg.Application, "MIKASA_APPLICATION")
	printField("Show errors", strconv.FormatBool(cfg.ShowErrors), boolOrEmpty(fileCfg.ShowErrors), "MIKASA_SHOW_ERRORS")
	printField("Emphasise header", strconv.FormatBool(cfg.EmphasiseHeader()), fileEmphasis, "MIKASA_EMPHASISE_TABLE_HEADER")
	printField("Dummy hrule", strconv.FormatBool(cfg.DummyHRule), boolOrEmpty(fileCfg.DummyHRule), "MIKASA_DUMMY_HRULE")
	printField("Jobs", strconv.Itoa(cfg.Jobs), intOrEmpty(fileCfg.Jobs), "MIKASA_JOBS")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

func boolOrEmpty(b bool) string {
	if !b {
		return ""
	}
	return "true"
}

func intOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
