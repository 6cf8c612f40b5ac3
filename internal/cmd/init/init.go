// Package init provides the init command for mikasa.
package init

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mikasa/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mikasa/internal/config"
)

type initOptions struct {
	identifier string
	base       string
	src        string
	dest       string
	langs      string
	noInput    bool
	force      bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mikasa configuration",
		Long: `Initialize mikasa for an extension's help sources.

This command will guide you through setting the extension identifier,
the image base address and the source and destination directories. The
configuration will be saved to ~/.config/mikasa/config.yml.`,
		Example: `  # Interactive setup
  mikasa init

  # Pre-populate the identifier
  mikasa init --id org.example.ext

  # Non-interactive, for scripts
  mikasa init --id org.example.ext --langs en,de --no-input`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout(), cmdutil.ConfigPath(cmd), opts)
		},
	}

	cmd.Flags().StringVar(&opts.identifier, "id", "", "extension identifier (e.g., org.example.ext)")
	cmd.Flags().StringVar(&opts.base, "base", "", "image base address")
	cmd.Flags().StringVar(&opts.src, "src", config.DefaultSrc, "source directory")
	cmd.Flags().StringVar(&opts.dest, "dest", config.DefaultDest, "destination directory")
	cmd.Flags().StringVar(&opts.langs, "langs", "", "comma separated languages (default: all)")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "write the flags without prompting")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing configuration")

	return cmd
}

func runInit(w io.Writer, configPath string, opts *initOptions) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.noInput {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
	}

	if !opts.noInput {
		if err := promptOptions(opts); err != nil {
			return err
		}
	}

	cfg := &config.Config{
		Identifier: strings.TrimSpace(opts.identifier),
		Base:       strings.TrimSpace(opts.base),
		Src:        strings.TrimSpace(opts.src),
		Dest:       strings.TrimSpace(opts.dest),
		Languages:  config.SplitLanguages(opts.langs),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  mikasa config test")
	fmt.Fprintln(w, "  mikasa convert")

	return nil
}

func promptOptions(opts *initOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Extension identifier").
				Description("Used in help file paths and topic ids").
				Placeholder("org.example.ext").
				Value(&opts.identifier).
				Validate(validateIdentifier),

			huh.NewInput().
				Title("Image base address (optional)").
				Description("Image sources starting with this prefix are moved below the identifier").
				Placeholder("https://example.org/img/").
				Value(&opts.base),

			huh.NewInput().
				Title("Source directory").
				Description("Contains one folder of markdown per language").
				Value(&opts.src),

			huh.NewInput().
				Title("Destination directory").
				Value(&opts.dest),

			huh.NewInput().
				Title("Languages (optional)").
				Description("Comma separated, empty converts every language folder").
				Placeholder("en,de").
				Value(&opts.langs).
				Validate(validateLanguages),
		),
	)

	return form.Run()
}

func validateIdentifier(s string) error {
	cfg := config.Config{Identifier: strings.TrimSpace(s)}
	return cfg.Validate()
}

func validateLanguages(s string) error {
	cfg := config.Config{Identifier: "-", Languages: config.SplitLanguages(s)}
	return cfg.Validate()
}
