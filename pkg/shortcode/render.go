// render.go builds the component-tag serialization of shortcode occurrences.
package shortcode

import "strings"

// attrEscaper matches PHP's htmlspecialchars with ENT_QUOTES.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#039;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeAttribute escapes a value for use inside a double quoted attribute.
func EscapeAttribute(value string) string {
	return attrEscaper.Replace(value)
}

// AttributeString renders attrs as `name="value"` pairs joined by spaces,
// camel-casing names and escaping values.
func AttributeString(attrs *Attributes) string {
	if attrs.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, key := range attrs.keys {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(AttributeName(key))
		sb.WriteString(`="`)
		sb.WriteString(EscapeAttribute(attrs.values[key]))
		sb.WriteString(`"`)
	}
	return sb.String()
}

// renderOpen renders <prefix+name attrs> or <prefix+name attrs /> when selfClosing.
func renderOpen(prefix, name string, attrs *Attributes, selfClosing bool) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(prefix)
	sb.WriteString(name)
	if s := AttributeString(attrs); s != "" {
		sb.WriteString(" ")
		sb.WriteString(s)
	}
	if selfClosing {
		sb.WriteString(" />")
	} else {
		sb.WriteString(">")
	}
	return sb.String()
}

// renderClose renders </prefix+name>.
func renderClose(prefix, name string) string {
	return "</" + prefix + name + ">"
}
