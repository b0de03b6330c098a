// Package shortcode converts WordPress-style [tag attr="v"]...[/tag] shortcodes
// into component tags such as <x-tag attr="v">...</x-tag>.
package shortcode

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

// DefaultPrefix is prepended to every component name.
const DefaultPrefix = "x-"

// SubstitutionMode selects how rewritten tags are spliced back into the content.
type SubstitutionMode string

const (
	// SubstitutePositional replaces each tag at its own byte offset.
	SubstitutePositional SubstitutionMode = "positional"
	// SubstituteGlobal replaces every occurrence of each raw tag text, then all
	// closing tags in one pass. Identical raw tags collide.
	SubstituteGlobal SubstitutionMode = "global"
)

// ValidSubstitutionModes returns the accepted substitution mode names.
func ValidSubstitutionModes() []string {
	return []string{string(SubstitutePositional), string(SubstituteGlobal)}
}

// Parser converts shortcode markup. A Parser is immutable after NewParser
// and may be shared between goroutines.
type Parser struct {
	prefix         string
	selfClosing    map[string]struct{}
	renames        map[string]string
	allowed        map[string]struct{}
	emptySelfClose bool
	mode           SubstitutionMode
	encoding       encoding.Encoding
	logger         zerolog.Logger
}

// Option customises parser behaviour.
type Option func(*Parser)

// WithPrefix sets the component prefix (default "x-").
func WithPrefix(prefix string) Option {
	return func(p *Parser) {
		p.prefix = prefix
	}
}

// WithSelfClosing marks tag names that never take a closing tag.
func WithSelfClosing(names ...string) Option {
	return func(p *Parser) {
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				p.selfClosing[NormalizeTag(name)] = struct{}{}
			}
		}
	}
}

// WithRenames maps shortcode names to different component names.
func WithRenames(renames map[string]string) Option {
	return func(p *Parser) {
		for from, to := range renames {
			if to = strings.TrimSpace(to); to != "" {
				p.renames[NormalizeTag(from)] = NormalizeTag(to)
			}
		}
	}
}

// WithAllowedTags restricts conversion to the given names. Other tags are
// left in the content untouched. An empty list allows every tag.
func WithAllowedTags(names ...string) Option {
	return func(p *Parser) {
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				p.allowed[NormalizeTag(name)] = struct{}{}
			}
		}
	}
}

// WithEmptySelfClose treats opening tags without attributes as self-closing.
func WithEmptySelfClose(enabled bool) Option {
	return func(p *Parser) {
		p.emptySelfClose = enabled
	}
}

// WithSubstitution selects the substitution mode.
func WithSubstitution(mode SubstitutionMode) Option {
	return func(p *Parser) {
		if mode != "" {
			p.mode = mode
		}
	}
}

// WithFallbackEncoding sets the encoding assumed for attribute values that are not valid UTF-8.
func WithFallbackEncoding(enc encoding.Encoding) Option {
	return func(p *Parser) {
		if enc != nil {
			p.encoding = enc
		}
	}
}

// WithLogger attaches a logger for parse warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser constructs a parser with the supplied options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		prefix:      DefaultPrefix,
		selfClosing: make(map[string]struct{}),
		renames:     make(map[string]string),
		allowed:     make(map[string]struct{}),
		mode:        SubstitutePositional,
		encoding:    defaultEncoding,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

var defaultParser = NewParser()

// Convert rewrites shortcodes in content using default options.
func Convert(content string) string {
	return defaultParser.Convert(content)
}

// Convert rewrites every shortcode in content to its component form.
func (p *Parser) Convert(content string) string {
	if content == "" {
		return content
	}
	result := p.Parse(content)
	return p.Substitute(content, result)
}

// ParseResult holds the shortcode records found in one document.
type ParseResult struct {
	Shortcodes []*Shortcode `json:"shortcodes"`
	Unmatched  []Token      `json:"-"`                  // closing tags with no open tag
	Warnings   []string     `json:"warnings,omitempty"` // any warnings generated during parsing
}

// AddWarning stores a formatted warning.
func (pr *ParseResult) AddWarning(format string, args ...interface{}) {
	pr.Warnings = append(pr.Warnings, fmt.Sprintf(format, args...))
}

// ClosingTable maps each distinct raw closing tag to its rewritten form.
// Synthesized closing tags are not part of the table.
func (pr *ParseResult) ClosingTable() map[string]string {
	table := make(map[string]string)
	for _, sc := range pr.Shortcodes {
		if sc.HasClosingTag && !sc.ClosingTag.Synthesized {
			table[sc.ClosingTag.Raw] = sc.ClosingTag.Rewritten
		}
	}
	return table
}

// Body returns the source text between a shortcode's opening and closing
// tags. Self-closing shortcodes have no body; a synthesized closing tag ends
// the body at the end of the content.
func (pr *ParseResult) Body(content string, sc *Shortcode) string {
	if sc == nil || sc.SelfClosing || !sc.HasClosingTag {
		return ""
	}
	start, end := sc.End(), sc.ClosingTag.Position
	if end > len(content) {
		end = len(content)
	}
	if start > end {
		return ""
	}
	return content[start:end]
}

// warn records a warning on the result and logs it.
func (p *Parser) warn(result *ParseResult, position int, format string, args ...interface{}) {
	result.AddWarning(format, args...)
	p.logger.Warn().Int("position", position).Msgf(format, args...)
}

// componentName returns the normalized, possibly renamed, component name for a tag.
func (p *Parser) componentName(tag string) string {
	name := NormalizeTag(tag)
	if renamed, ok := p.renames[name]; ok {
		return renamed
	}
	return name
}

func (p *Parser) isAllowed(tag string) bool {
	if len(p.allowed) == 0 {
		return true
	}
	_, ok := p.allowed[NormalizeTag(tag)]
	return ok
}
