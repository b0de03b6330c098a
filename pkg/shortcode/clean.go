package shortcode

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// defaultEncoding is assumed for attribute values that are not valid UTF-8.
var defaultEncoding encoding.Encoding = mustEncoding("windows-1252")

// fancyQuotes are stripped from value edges; some page builders (Divi) emit
// them around values instead of straight quotes.
var fancyQuotes = []string{"”", "″"}

// LookupEncoding resolves a WHATWG encoding label such as "windows-1252" or "latin1".
func LookupEncoding(name string) (encoding.Encoding, error) {
	return htmlindex.Get(name)
}

func mustEncoding(name string) encoding.Encoding {
	enc, err := LookupEncoding(name)
	if err != nil {
		panic(err)
	}
	return enc
}

// toUTF8 converts s from the fallback encoding when it is not valid UTF-8.
// On failure the value is returned unmodified.
func toUTF8(s string, fallback encoding.Encoding) string {
	if utf8.ValidString(s) || fallback == nil {
		return s
	}
	decoded, err := fallback.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}

// cleanValue strips wrapping quote characters from an attribute value.
func cleanValue(value string, fallback encoding.Encoding) string {
	if value == "" {
		return value
	}

	value = toUTF8(value, fallback)

	if len(value) >= 2 {
		lead, tail := value[0], value[len(value)-1]
		if lead == tail && (lead == '"' || lead == '\'') {
			return value[1 : len(value)-1]
		}
	}

	// 0xE2 leads the UTF-8 encoding of the typographic quotes
	if value[0] == 0xE2 {
		for _, q := range fancyQuotes {
			if strings.HasPrefix(value, q) {
				value = value[len(q):]
				break
			}
		}
		for _, q := range fancyQuotes {
			if strings.HasSuffix(value, q) {
				value = value[:len(value)-len(q)]
				break
			}
		}
	}

	return value
}
