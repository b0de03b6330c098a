// Package init provides the init command for wpsc.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wpsc/internal/config"
	"github.com/open-cli-collective/wpsc/pkg/shortcode"
)

type initOptions struct {
	configPath   string
	prefix       string
	selfClosing  string
	substitution string
	noInput      bool
	force        bool
}

// answers holds the values collected by the init form.
type answers struct {
	Prefix         string
	SelfClosing    string
	Substitution   string
	EmptySelfClose bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize wpsc configuration",
		Long: `Initialize wpsc with your conversion settings.

This command will guide you through choosing the component prefix,
the tags that never take a closing tag, and the substitution mode.
The configuration will be saved to ~/.config/wpsc/config.yml.`,
		Example: `  # Interactive setup
  wpsc init

  # Pre-populate values
  wpsc init --prefix wp- --self-closing br,hr

  # Write a config without prompting
  wpsc init --no-input --prefix wp-`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runInit(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.prefix, "prefix", shortcode.DefaultPrefix, "Component tag prefix")
	cmd.Flags().StringVar(&opts.selfClosing, "self-closing", "", "Comma separated tags that never take a closing tag")
	cmd.Flags().StringVar(&opts.substitution, "substitution", string(shortcode.SubstitutePositional), "Substitution mode: positional, global")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "Skip the form and save the flag values")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config without asking")

	return cmd
}

func runInit(opts *initOptions, w io.Writer) error {
	configPath := config.ResolvePath(opts.configPath)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.noInput {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
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

	a := &answers{
		Prefix:       opts.prefix,
		SelfClosing:  opts.selfClosing,
		Substitution: opts.substitution,
	}

	if !opts.noInput {
		if err := newForm(a).Run(); err != nil {
			return err
		}
	}

	cfg := a.config()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  wpsc config test")
	fmt.Fprintln(w, "  wpsc convert <file>")

	return nil
}

func newForm(a *answers) *huh.Form {
	modes := make([]huh.Option[string], 0, len(shortcode.ValidSubstitutionModes()))
	for _, m := range shortcode.ValidSubstitutionModes() {
		modes = append(modes, huh.NewOption(m, m))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Component prefix").
				Description("Prepended to every converted tag name").
				Placeholder(shortcode.DefaultPrefix).
				Value(&a.Prefix).
				Validate(validatePrefix),

			huh.NewInput().
				Title("Self-closing tags (optional)").
				Description("Comma separated tags that never take a closing tag").
				Placeholder("br, hr, et_pb_image").
				Value(&a.SelfClosing),

			huh.NewSelect[string]().
				Title("Substitution mode").
				Description("positional edits each tag in place; global replaces every copy of a tag").
				Options(modes...).
				Value(&a.Substitution),

			huh.NewConfirm().
				Title("Self-close tags without attributes?").
				Value(&a.EmptySelfClose),
		),
	)
}

func validatePrefix(s string) error {
	return (&config.Config{Prefix: s}).Validate()
}

// config converts the answers into a Config, leaving defaults unset.
func (a *answers) config() *config.Config {
	cfg := &config.Config{
		SelfClosing:    config.SplitList(a.SelfClosing),
		EmptySelfClose: a.EmptySelfClose,
	}
	if a.Prefix != shortcode.DefaultPrefix {
		cfg.Prefix = a.Prefix
	}
	if a.Substitution != string(shortcode.SubstitutePositional) {
		cfg.Substitution = a.Substitution
	}
	return cfg
}
