package configcmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wpsc/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective wpsc configuration and where each value comes from.`,
		Example: `  # Show current config
  wpsc config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			path, _ := cmd.Flags().GetString("config")
			return runShow(config.ResolvePath(path), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, w io.Writer) error {
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
		_, _ = bold.Fprintf(w, "%-16s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		source := "config"
		switch {
		case envVar != "" && os.Getenv(envVar) != "":
			source = envVar
		case fileErr != nil || fileValue != value:
			source = "-"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Prefix", cfg.Prefix, fileCfg.Prefix, "WPSC_PREFIX")
	printField("Self-closing", strings.Join(cfg.SelfClosing, ", "), strings.Join(fileCfg.SelfClosing, ", "), "WPSC_SELF_CLOSING")
	printField("Renames", formatRenames(cfg.Renames), formatRenames(fileCfg.Renames), "")
	printField("Tags", strings.Join(cfg.Tags, ", "), strings.Join(fileCfg.Tags, ", "), "")
	printField("Empty self-close", formatBool(cfg.EmptySelfClose), formatBool(fileCfg.EmptySelfClose), "")
	printField("Substitution", cfg.Substitution, fileCfg.Substitution, "WPSC_SUBSTITUTION")
	printField("Encoding", cfg.Encoding, fileCfg.Encoding, "WPSC_ENCODING")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

func formatRenames(renames map[string]string) string {
	keys := make([]string, 0, len(renames))
	for k := range renames {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" -> "+renames[k])
	}
	return strings.Join(parts, ", ")
}

func formatBool(b bool) string {
	if !b {
		return ""
	}
	return strconv.FormatBool(b)
}
