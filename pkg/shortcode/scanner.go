// scanner.go implements tokenization for [tag]...[/tag] shortcode syntax.
package shortcode

import (
	"regexp"
	"strings"
)

// tagPattern matches opening, closing and self-closing tags.
// Groups: 1 closing marker, 2 name, 3 raw attributes, 4 self-close marker.
var tagPattern = regexp.MustCompile(`\[(/?)([\w-]+)([^\]]*?)(/)?\]`)

// Scan returns every tag-like token in content, in left-to-right order.
// Recognized forms:
//   - [tag] or [tag attrs] - opening tag
//   - [/tag] - closing tag
//   - [tag/] or [tag attrs/] - self-closing
//
// The scan is purely textual: each match ends at the first ']'.
func Scan(content string) []Token {
	if !strings.Contains(content, "[") {
		return nil
	}

	matches := tagPattern.FindAllStringSubmatchIndex(content, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		token := Token{
			Raw:           content[m[0]:m[1]],
			Position:      m[0],
			Name:          content[m[4]:m[5]],
			RawAttributes: content[m[6]:m[7]],
			Kind:          KindOpening,
		}

		// A trailing '/' takes precedence over a leading one.
		switch {
		case m[8] >= 0:
			token.Kind = KindSelfClosing
		case m[3] > m[2]:
			token.Kind = KindClosing
		}

		tokens = append(tokens, token)
	}
	return tokens
}
