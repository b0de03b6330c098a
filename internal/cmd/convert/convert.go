// Package convert provides the convert command.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wpsc/internal/config"
	"github.com/open-cli-collective/wpsc/internal/input"
	"github.com/open-cli-collective/wpsc/internal/logger"
	"github.com/open-cli-collective/wpsc/pkg/md"
	"github.com/open-cli-collective/wpsc/pkg/shortcode"
)

type convertOptions struct {
	configPath  string
	out         string
	write       bool
	markdown    bool
	global      bool
	prefix      string
	selfClosing []string
	verbose     bool
	noColor     bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file...]",
		Short: "Rewrite shortcodes as component tags",
		Long: `Rewrite WordPress-style shortcodes such as [caption]Hi[/caption] into
prefixed component tags such as <x-caption>Hi</x-caption>. Tags left open
are closed at the end of the input.

Input is read from the named files, or from stdin when no file is given
(or the file is "-"). Output goes to stdout unless --out or --write is set.`,
		Example: `  # Convert a file to stdout
  wpsc convert post.html

  # Convert in place
  wpsc convert --write posts/*.html

  # Convert markdown and render it to HTML
  cat post.md | wpsc convert --markdown --out post.html

  # Treat [br] and [hr] as self-closing
  wpsc convert --self-closing br,hr post.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runConvert(args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write output to this file")
	cmd.Flags().BoolVar(&opts.write, "write", false, "Rewrite input files in place")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Render the converted markdown to HTML")
	cmd.Flags().BoolVar(&opts.global, "global", false, "Use global string replacement (compatibility mode)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Component tag prefix (default: x-)")
	cmd.Flags().StringSliceVar(&opts.selfClosing, "self-closing", nil, "Tags that never take a closing tag")

	return cmd
}

func runConvert(files []string, opts *convertOptions) error {
	if opts.write && opts.out != "" {
		return errors.New("--out and --write cannot be used together")
	}
	if opts.write && len(files) == 0 {
		return errors.New("--write requires at least one file")
	}
	if opts.out != "" && len(files) > 1 {
		return errors.New("--out accepts a single input")
	}

	parser, err := newParser(opts)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		files = []string{input.Stdin}
	}

	for _, file := range files {
		content, err := input.Read(file, opts.stdin)
		if err != nil {
			return err
		}

		output, err := convert(parser, content, opts.markdown)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", input.DisplayName(file), err)
		}

		if err := writeOutput(file, output, opts); err != nil {
			return err
		}
	}

	return nil
}

func newParser(opts *convertOptions) (*shortcode.Parser, error) {
	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.prefix != "" {
		cfg.Prefix = opts.prefix
	}
	cfg.SelfClosing = append(cfg.SelfClosing, opts.selfClosing...)
	if opts.global {
		cfg.Substitution = string(shortcode.SubstituteGlobal)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	stderr := opts.stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	log := logger.NewWithWriter(stderr, opts.verbose, opts.noColor)

	return shortcode.NewParser(append(cfg.ParserOptions(), shortcode.WithLogger(log))...), nil
}

func convert(parser *shortcode.Parser, content string, markdown bool) (string, error) {
	output := parser.Convert(content)
	if !markdown {
		return output, nil
	}
	return md.ToHTML([]byte(output))
}

func writeOutput(file, output string, opts *convertOptions) error {
	switch {
	case opts.write:
		if file == input.Stdin {
			return errors.New("--write cannot rewrite stdin")
		}
		info, err := os.Stat(file)
		if err != nil {
			return fmt.Errorf("failed to stat file: %w", err)
		}
		if err := os.WriteFile(file, []byte(output), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		return nil

	case opts.out != "":
		if err := os.WriteFile(opts.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil

	default:
		stdout := opts.stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		_, err := io.WriteString(stdout, output)
		return err
	}
}
