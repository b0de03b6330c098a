// substitute.go splices rewritten tags back into the source text.
package shortcode

import (
	"sort"
	"strings"
)

// edit replaces length bytes at position with text.
type edit struct {
	position int
	length   int
	text     string
}

// Substitute applies the rewrites in result to content using the parser's
// substitution mode.
func (p *Parser) Substitute(content string, result *ParseResult) string {
	if result == nil || len(result.Shortcodes) == 0 {
		return content
	}
	if p.mode == SubstituteGlobal {
		return substituteGlobal(content, result)
	}
	return substitutePositional(content, result)
}

// substitutePositional rewrites every tag at its own offset. Unmatched closing
// tags stay as they are.
func substitutePositional(content string, result *ParseResult) string {
	edits := make([]edit, 0, len(result.Shortcodes)*2)
	for _, sc := range result.Shortcodes {
		edits = append(edits, edit{position: sc.Position, length: len(sc.Raw), text: sc.Rewritten})
		if sc.HasClosingTag && !sc.ClosingTag.Synthesized {
			edits = append(edits, edit{
				position: sc.ClosingTag.Position,
				length:   len(sc.ClosingTag.Raw),
				text:     sc.ClosingTag.Rewritten,
			})
		}
	}
	// Synthesized closings go at the end, innermost (latest opened) first.
	for i := len(result.Shortcodes) - 1; i >= 0; i-- {
		sc := result.Shortcodes[i]
		if sc.HasClosingTag && sc.ClosingTag.Synthesized {
			edits = append(edits, edit{position: len(content), text: sc.ClosingTag.Rewritten})
		}
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].position < edits[j].position
	})

	var sb strings.Builder
	sb.Grow(len(content))
	pos := 0
	for _, e := range edits {
		if e.position < pos {
			continue
		}
		sb.WriteString(content[pos:e.position])
		sb.WriteString(e.text)
		pos = e.position + e.length
	}
	sb.WriteString(content[pos:])
	return sb.String()
}

// substituteGlobal mirrors plain string replacement: each record's raw text is
// replaced everywhere, then all closing tags are replaced in one pass.
func substituteGlobal(content string, result *ParseResult) string {
	for _, sc := range result.Shortcodes {
		content = strings.ReplaceAll(content, sc.Raw, sc.Rewritten)
	}

	table := result.ClosingTable()
	if len(table) > 0 {
		raws := make([]string, 0, len(table))
		for raw := range table {
			raws = append(raws, raw)
		}
		sort.Strings(raws)

		pairs := make([]string, 0, len(table)*2)
		for _, raw := range raws {
			pairs = append(pairs, raw, table[raw])
		}
		content = strings.NewReplacer(pairs...).Replace(content)
	}

	for i := len(result.Shortcodes) - 1; i >= 0; i-- {
		sc := result.Shortcodes[i]
		if sc.HasClosingTag && sc.ClosingTag.Synthesized {
			content += sc.ClosingTag.Rewritten
		}
	}
	return content
}
