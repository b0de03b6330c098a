package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/wpsc/internal/config"
)

// isolate points the config lookup at an empty directory and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, v := range config.EnvVars() {
		t.Setenv(v, "")
	}
	return dir
}

func newOpts(stdin string) (*convertOptions, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &convertOptions{
		noColor: true,
		stdin:   strings.NewReader(stdin),
		stdout:  &stdout,
		stderr:  &stderr,
	}, &stdout, &stderr
}

func TestRunConvert_Stdin(t *testing.T) {
	isolate(t)
	opts, stdout, _ := newOpts(`<p>[gallery ids="1,2" /]</p>`)

	err := runConvert(nil, opts)
	require.NoError(t, err)
	assert.Equal(t, `<p><x-gallery ids="1,2" /></p>`, stdout.String())
}

func TestRunConvert_DashReadsStdin(t *testing.T) {
	isolate(t)
	opts, stdout, _ := newOpts(`[note]hi[/note]`)

	err := runConvert([]string{"-"}, opts)
	require.NoError(t, err)
	assert.Equal(t, `<x-note>hi</x-note>`, stdout.String())
}

func TestRunConvert_HelpExamples(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[caption]Hi[/caption]", "<x-caption>Hi</x-caption>"},
		{`[gallery ids="1,2"]`, `<x-gallery ids="1,2"></x-gallery>`},
	}

	cmd := NewCmdConvert()
	require.Contains(t, cmd.Long, "[caption]Hi[/caption]")
	require.Contains(t, cmd.Long, "<x-caption>Hi</x-caption>")

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			isolate(t)
			opts, stdout, _ := newOpts(tt.input)

			require.NoError(t, runConvert(nil, opts))
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRunConvert_Flags(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		modify func(*convertOptions)
		want   string
	}{
		{
			name:   "prefix",
			input:  "[a]x[/a]",
			modify: func(o *convertOptions) { o.prefix = "wp-" },
			want:   "<wp-a>x</wp-a>",
		},
		{
			name:   "self-closing",
			input:  "[br]x",
			modify: func(o *convertOptions) { o.selfClosing = []string{"br"} },
			want:   "<x-br />x",
		},
		{
			name:   "global substitution",
			input:  "[/a][a]x[/a]",
			modify: func(o *convertOptions) { o.global = true },
			want:   "</x-a><x-a>x</x-a>",
		},
		{
			name:   "positional substitution",
			input:  "[/a][a]x[/a]",
			modify: func(*convertOptions) {},
			want:   "[/a]<x-a>x</x-a>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			opts, stdout, _ := newOpts(tt.input)
			tt.modify(opts)

			require.NoError(t, runConvert(nil, opts))
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRunConvert_Markdown(t *testing.T) {
	isolate(t)
	opts, stdout, _ := newOpts("# Title\n\nSee [b]hi[/b]\n")
	opts.markdown = true

	require.NoError(t, runConvert(nil, opts))
	assert.Contains(t, stdout.String(), "<h1>Title</h1>")
	assert.Contains(t, stdout.String(), "<p>See <x-b>hi</x-b></p>")
}

func TestRunConvert_Write(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "post.html")
	require.NoError(t, os.WriteFile(path, []byte("[a]x[/a]"), 0600))

	opts, stdout, _ := newOpts("")
	opts.write = true

	require.NoError(t, runConvert([]string{path}, opts))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<x-a>x</x-a>", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRunConvert_Out(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.html")
	out := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(in, []byte("[a /]"), 0644))

	opts, _, _ := newOpts("")
	opts.out = out

	require.NoError(t, runConvert([]string{in}, opts))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<x-a />", string(data))
}

func TestRunConvert_UsesConfigFile(t *testing.T) {
	dir := isolate(t)
	cfg := &config.Config{Renames: map[string]string{"et_pb_section": "section"}}
	require.NoError(t, cfg.Save(filepath.Join(dir, "wpsc", "config.yml")))

	opts, stdout, _ := newOpts("[et_pb_section]x[/et_pb_section]")

	require.NoError(t, runConvert(nil, opts))
	assert.Equal(t, "<x-section>x</x-section>", stdout.String())
}

func TestRunConvert_ExplicitConfigPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, (&config.Config{Prefix: "c-"}).Save(path))

	opts, stdout, _ := newOpts("[a /]")
	opts.configPath = path

	require.NoError(t, runConvert(nil, opts))
	assert.Equal(t, "<c-a />", stdout.String())
}

func TestRunConvert_WarningsLogged(t *testing.T) {
	isolate(t)
	opts, stdout, stderr := newOpts("[a]x")

	require.NoError(t, runConvert(nil, opts))
	assert.Equal(t, "<x-a>x</x-a>", stdout.String())
	assert.Contains(t, stderr.String(), "unclosed tag")
}

func TestRunConvert_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		modify  func(*convertOptions)
		wantErr string
	}{
		{
			name:    "out and write",
			files:   []string{"a.html"},
			modify:  func(o *convertOptions) { o.out = "b.html"; o.write = true },
			wantErr: "cannot be used together",
		},
		{
			name:    "write without files",
			modify:  func(o *convertOptions) { o.write = true },
			wantErr: "--write requires at least one file",
		},
		{
			name:    "out with several files",
			files:   []string{"a.html", "b.html"},
			modify:  func(o *convertOptions) { o.out = "c.html" },
			wantErr: "--out accepts a single input",
		},
		{
			name:    "invalid prefix",
			modify:  func(o *convertOptions) { o.prefix = "X_" },
			wantErr: "invalid config",
		},
		{
			name:    "missing file",
			files:   []string{"/nonexistent/post.html"},
			modify:  func(*convertOptions) {},
			wantErr: "failed to read file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			opts, _, _ := newOpts("")
			tt.modify(opts)

			err := runConvert(tt.files, opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
