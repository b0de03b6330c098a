// Package root provides the root command for the wpsc CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wpsc/internal/cmd/completion"
	"github.com/open-cli-collective/wpsc/internal/cmd/configcmd"
	"github.com/open-cli-collective/wpsc/internal/cmd/convert"
	initcmd "github.com/open-cli-collective/wpsc/internal/cmd/init"
	"github.com/open-cli-collective/wpsc/internal/cmd/inspect"
	"github.com/open-cli-collective/wpsc/internal/version"
)

// NewCmdRoot creates the root command for wpsc.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wpsc",
		Short: "Convert WordPress shortcodes into component tags",
		Long: `wpsc rewrites WordPress-style shortcodes such as [gallery ids="1,2" /]
into prefixed component tags such as <x-gallery ids="1,2" />.

It pairs opening and closing tags, closes anything left open, and can
list every shortcode it finds for inspection.

Get started by running: wpsc init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/wpsc/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details to stderr")

	cmd.SetVersionTemplate(version.Template("wpsc"))

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(inspect.NewCmdInspect())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
