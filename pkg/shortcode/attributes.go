// attributes.go implements the ordered attribute map and the attribute string parser.
package shortcode

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

// Attributes is an insertion-ordered string map.
// Setting an existing key replaces its value but keeps its position.
type Attributes struct {
	keys   []string
	values map[string]string
}

// NewAttributes returns an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]string)}
}

// Set stores value under key.
func (a *Attributes) Set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value stored under key.
func (a *Attributes) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.keys...)
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Map returns an unordered copy of the attributes.
func (a *Attributes) Map() map[string]string {
	out := make(map[string]string, a.Len())
	if a == nil {
		return out
	}
	for _, k := range a.keys {
		out[k] = a.values[k]
	}
	return out
}

// String renders the attributes as space separated key=value pairs, in order.
func (a *Attributes) String() string {
	if a.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, len(a.keys))
	for _, k := range a.keys {
		parts = append(parts, k+"="+a.values[k])
	}
	return strings.Join(parts, " ")
}

// MarshalJSON encodes the attributes as a JSON object preserving key order.
func (a *Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if a != nil {
		for i, k := range a.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(a.values[k])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// quoteClosers maps every accepted opening quote to its typographic partner.
// A value may also close with the same character it opened with.
var quoteClosers = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'“':  '”',
	'”':  '”',
	'‘':  '’',
	'’':  '’',
	'″':  '″',
}

// ParseAttributes parses a raw attribute string like `a="1" b='2' c=3`.
// Malformed fragments are skipped; it never fails.
func ParseAttributes(raw string) *Attributes {
	return parseAttributes(raw, defaultEncoding, zerolog.Nop())
}

func parseAttributes(raw string, fallback encoding.Encoding, log zerolog.Logger) *Attributes {
	attrs := NewAttributes()
	pos := 0

	for pos < len(raw) {
		pos = skipSpace(raw, pos)
		if pos >= len(raw) {
			break
		}

		// Name runs up to '=' or whitespace
		nameStart := pos
		for pos < len(raw) {
			r, size := utf8.DecodeRuneInString(raw[pos:])
			if r == '=' || unicode.IsSpace(r) {
				break
			}
			pos += size
		}
		name := raw[nameStart:pos]

		pos = skipSpace(raw, pos)
		if pos >= len(raw) || raw[pos] != '=' {
			log.Debug().Str("fragment", name).Msg("dropping attribute without value")
			continue
		}
		pos++ // skip '='
		pos = skipSpace(raw, pos)
		if pos >= len(raw) {
			log.Debug().Str("attribute", name).Msg("dropping attribute with dangling '='")
			break
		}

		value, next, ok := parseAttributeValue(raw, pos)
		pos = next
		if !ok {
			log.Debug().Str("attribute", name).Msg("dropping attribute with unterminated quote")
			continue
		}
		if name == "" {
			continue
		}
		attrs.Set(name, cleanValue(value, fallback))
	}

	return attrs
}

// parseAttributeValue reads a quoted or unquoted value starting at pos.
// It reports ok=false for an unterminated quoted value, consuming the rest of raw.
func parseAttributeValue(raw string, pos int) (string, int, bool) {
	open, size := utf8.DecodeRuneInString(raw[pos:])
	closer, quoted := quoteClosers[open]
	if !quoted {
		start := pos
		for pos < len(raw) {
			r, size := utf8.DecodeRuneInString(raw[pos:])
			if unicode.IsSpace(r) {
				break
			}
			pos += size
		}
		return raw[start:pos], pos, true
	}

	pos += size // skip opening quote
	isCloser := func(r rune) bool { return r == open || r == closer }

	var value strings.Builder
	start := pos
	for pos < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[pos:])
		if isCloser(r) {
			value.WriteString(raw[start:pos])
			return value.String(), pos + size, true
		}
		// An escaped quote is literal unless no other quote can close the value.
		if r == '\\' && pos+1 < len(raw) {
			next, nextSize := utf8.DecodeRuneInString(raw[pos+1:])
			if isCloser(next) {
				if !strings.ContainsFunc(raw[pos+1+nextSize:], isCloser) {
					value.WriteString(raw[start : pos+1])
					return value.String(), pos + 1 + nextSize, true
				}
				value.WriteString(raw[start:pos])
				value.WriteRune(next)
				pos += 1 + nextSize
				start = pos
				continue
			}
		}
		pos += size
	}
	return "", len(raw), false
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}
