// tokens.go defines the token and record types shared by the scanner and builder.
package shortcode

// TokenKind represents the kind of a bracket tag token.
type TokenKind int

const (
	KindOpening     TokenKind = iota // [tag] or [tag attrs]
	KindClosing                      // [/tag]
	KindSelfClosing                  // [tag/] or [tag attrs/]
)

// String returns the lowercase name of the kind.
func (k TokenKind) String() string {
	switch k {
	case KindOpening:
		return "opening"
	case KindClosing:
		return "closing"
	case KindSelfClosing:
		return "self-closing"
	default:
		return "unknown"
	}
}

// Token is a single tag-like match found by Scan.
type Token struct {
	Raw           string    // exact matched text
	Position      int       // byte offset in the scanned content
	Kind          TokenKind // opening, closing or self-closing
	Name          string    // tag name as written
	RawAttributes string    // unparsed text between the name and the closing bracket
}

// Shortcode is one opening or self-closing tag occurrence.
type Shortcode struct {
	Tag           string      `json:"tag"`
	NormalizedTag string      `json:"normalizedTag"`
	Component     string      `json:"component"` // NormalizedTag after renames, without the prefix
	Raw           string      `json:"raw"`
	Rewritten     string      `json:"rewritten"`
	SelfClosing   bool        `json:"selfClosing"`
	Position      int         `json:"position"`
	Level         int         `json:"level"`
	Attributes    *Attributes `json:"attributes"`
	HasClosingTag bool        `json:"hasClosingTag"`
	ClosingTag    *ClosingTag `json:"closingTag,omitempty"`
}

// ClosingTag describes the closing counterpart attached to a Shortcode.
type ClosingTag struct {
	Tag         string      `json:"tag"`
	Raw         string      `json:"raw"`
	Rewritten   string      `json:"rewritten"`
	Position    int         `json:"position"`
	Attributes  *Attributes `json:"attributes"`
	Synthesized bool        `json:"synthesized,omitempty"` // created at end of input, not present in the source
}

// End returns the byte offset right after the opening tag.
func (s *Shortcode) End() int {
	return s.Position + len(s.Raw)
}
