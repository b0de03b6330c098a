// builder.go pairs opening and closing tags into Shortcode records.
package shortcode

import "strings"

// Parse scans content and builds one record per opening or self-closing tag.
// Records are ordered by first appearance; closing tags are attached to the
// record they close. Tags still open at the end of input get a synthesized
// closing tag positioned at len(content).
func (p *Parser) Parse(content string) *ParseResult {
	result := &ParseResult{}
	stack := []int{}

	for _, token := range Scan(content) {
		if !p.isAllowed(token.Name) {
			p.logger.Debug().Str("tag", token.Name).Int("position", token.Position).Msg("skipping tag not in allowlist")
			continue
		}

		switch token.Kind {
		case KindClosing:
			if len(stack) == 0 {
				// Orphan close tag - leave it in the text
				result.Unmatched = append(result.Unmatched, token)
				p.warn(result, token.Position, "orphan close tag: %s", token.Raw)
				continue
			}

			index := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			open := result.Shortcodes[index]
			if !strings.EqualFold(NormalizeTag(open.Tag), NormalizeTag(token.Name)) {
				p.warn(result, token.Position, "mismatched close tag: expected [/%s], got %s", open.Tag, token.Raw)
			}

			open.HasClosingTag = true
			open.ClosingTag = &ClosingTag{
				Tag:        token.Name,
				Raw:        token.Raw,
				Rewritten:  renderClose(p.prefix, p.componentName(token.Name)),
				Position:   token.Position,
				Attributes: parseAttributes(token.RawAttributes, p.encoding, p.logger),
			}

		default:
			attrs := parseAttributes(strings.TrimSpace(token.RawAttributes), p.encoding, p.logger)
			name := p.componentName(token.Name)
			selfClosing := p.isSelfClosing(token, attrs)

			sc := &Shortcode{
				Tag:           token.Name,
				NormalizedTag: NormalizeTag(token.Name),
				Component:     name,
				Raw:           token.Raw,
				Rewritten:     renderOpen(p.prefix, name, attrs, selfClosing),
				SelfClosing:   selfClosing,
				Position:      token.Position,
				Level:         len(stack),
				Attributes:    attrs,
			}

			if !selfClosing {
				stack = append(stack, len(result.Shortcodes))
			}
			result.Shortcodes = append(result.Shortcodes, sc)
		}
	}

	// Handle any unclosed tags, innermost first
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sc := result.Shortcodes[index]
		if sc.SelfClosing || sc.HasClosingTag {
			continue
		}
		p.warn(result, sc.Position, "unclosed tag: %s", sc.Raw)
		sc.HasClosingTag = true
		sc.ClosingTag = &ClosingTag{
			Tag:         sc.Tag,
			Raw:         "[/" + sc.Tag + "]",
			Rewritten:   renderClose(p.prefix, sc.Component),
			Position:    len(content),
			Attributes:  NewAttributes(),
			Synthesized: true,
		}
	}

	return result
}

// isSelfClosing reports whether an opening token takes no closing tag.
// The explicit marker always wins; then the configured names; then, when
// enabled, the absence of attributes.
func (p *Parser) isSelfClosing(token Token, attrs *Attributes) bool {
	if token.Kind == KindSelfClosing {
		return true
	}
	if _, ok := p.selfClosing[NormalizeTag(token.Name)]; ok {
		return true
	}
	return p.emptySelfClose && attrs.Len() == 0
}
