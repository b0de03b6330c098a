// Package inspect provides the inspect command.
package inspect

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wpsc/internal/config"
	"github.com/open-cli-collective/wpsc/internal/input"
	"github.com/open-cli-collective/wpsc/internal/logger"
	"github.com/open-cli-collective/wpsc/internal/view"
	"github.com/open-cli-collective/wpsc/pkg/md"
	"github.com/open-cli-collective/wpsc/pkg/shortcode"
)

const (
	maxAttributesWidth = 40
	maxBodyWidth       = 40
)

type inspectOptions struct {
	configPath  string
	output      string
	noColor     bool
	verbose     bool
	prefix      string
	selfClosing []string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCmdInspect creates the inspect command.
func NewCmdInspect() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "List the shortcodes found in a document",
		Long: `Parse a document and list one row per shortcode: its position, nesting
level, tag and component names, whether it closes, its attributes and a
markdown preview of its body.`,
		Example: `  # Inspect a file
  wpsc inspect post.html

  # Emit records as JSON
  wpsc inspect post.html -o json

  # Inspect stdin
  cat post.html | wpsc inspect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()

			file := input.Stdin
			if len(args) == 1 {
				file = args[0]
			}
			return runInspect(file, opts)
		},
	}

	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Component tag prefix (default: x-)")
	cmd.Flags().StringSliceVar(&opts.selfClosing, "self-closing", nil, "Tags that never take a closing tag")

	return cmd
}

func runInspect(file string, opts *inspectOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.prefix != "" {
		cfg.Prefix = opts.prefix
	}
	cfg.SelfClosing = append(cfg.SelfClosing, opts.selfClosing...)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	content, err := input.Read(file, opts.stdin)
	if err != nil {
		return err
	}

	// Warnings are part of the report; the logger only adds debug detail.
	log := zerolog.Nop()
	if opts.verbose {
		stderr := opts.stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		log = logger.NewWithWriter(stderr, true, opts.noColor)
	}

	parser := shortcode.NewParser(append(cfg.ParserOptions(), shortcode.WithLogger(log))...)
	result := parser.Parse(content)

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if opts.output == "json" {
		return renderer.RenderJSON(result)
	}

	if len(result.Shortcodes) == 0 {
		renderer.RenderText("No shortcodes found.")
	} else {
		headers := []string{"POSITION", "LEVEL", "TAG", "COMPONENT", "SELF-CLOSING", "CLOSED", "ATTRIBUTES", "BODY"}
		rows := make([][]string, 0, len(result.Shortcodes))
		for _, sc := range result.Shortcodes {
			rows = append(rows, []string{
				strconv.Itoa(sc.Position),
				strconv.Itoa(sc.Level),
				sc.Tag,
				sc.Component,
				yesNo(sc.SelfClosing),
				closedState(sc),
				view.Truncate(view.OneLine(shortcode.AttributeString(sc.Attributes)), maxAttributesWidth),
				view.Truncate(bodyPreview(result.Body(content, sc)), maxBodyWidth),
			})
		}
		renderer.RenderTable(headers, rows)
	}

	for _, w := range result.Warnings {
		renderer.Warning(w)
	}

	return nil
}

// bodyPreview renders a body as a single line of markdown, falling back to
// the raw text when it cannot be converted.
func bodyPreview(body string) string {
	preview, err := md.FromHTML(body)
	if err != nil {
		preview = body
	}
	return view.OneLine(preview)
}

func closedState(sc *shortcode.Shortcode) string {
	switch {
	case sc.SelfClosing:
		return "-"
	case sc.ClosingTag != nil && sc.ClosingTag.Synthesized:
		return "synthesized"
	case sc.HasClosingTag:
		return "yes"
	default:
		return "no"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
