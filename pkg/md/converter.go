// Package md converts between markdown and HTML around shortcode conversion.
package md

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// mdParser keeps raw HTML so converted components survive rendering.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ToHTML renders markdown to HTML. Inline and block HTML, including
// prefixed component tags, is passed through unchanged.
func ToHTML(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := mdParser.Convert(markdown, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
