package configcmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wpsc/internal/config"
	"github.com/open-cli-collective/wpsc/pkg/shortcode"
)

const defaultSample = `[gallery ids="1,2"][caption]Hello[/caption][/gallery]`

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	var sample string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Validate the configuration against a sample",
		Long: `Validate the effective wpsc configuration and show how it converts a
sample document.`,
		Example: `  # Test with the built-in sample
  wpsc config test

  # Test with your own sample
  wpsc config test --sample '[et_pb_section]x[/et_pb_section]'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadWithEnv(config.ResolvePath(path))
			if err != nil {
				return fmt.Errorf("failed to load config: %w (run 'wpsc init' to configure)", err)
			}
			return runTest(cfg, sample, noColor, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&sample, "sample", defaultSample, "Document to convert")

	return cmd
}

func runTest(cfg *config.Config, sample string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	if err := cfg.Validate(); err != nil {
		_, _ = red.Fprintln(w, "✗ Invalid configuration:", err)
		fmt.Fprintln(w, "\nCheck your settings with: wpsc config show")
		fmt.Fprintln(w, "Reconfigure with: wpsc init")
		return fmt.Errorf("invalid config: %w", err)
	}
	_, _ = green.Fprintln(w, "✓ Configuration valid")

	parser := shortcode.NewParser(cfg.ParserOptions()...)
	result := parser.Parse(sample)

	fmt.Fprintf(w, "\nInput:  %s\n", sample)
	fmt.Fprintf(w, "Output: %s\n", parser.Substitute(sample, result))

	for _, warning := range result.Warnings {
		_, _ = yellow.Fprintln(w, "! "+warning)
	}

	return nil
}
