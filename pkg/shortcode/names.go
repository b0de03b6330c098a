package shortcode

import (
	"strings"

	"github.com/ettle/strcase"
)

// NormalizeTag converts a shortcode name to its component form:
// lowercase words joined by hyphens ("et_pb_section" -> "et-pb-section", "myTag" -> "my-tag").
func NormalizeTag(name string) string {
	return strcase.ToKebab(strings.ReplaceAll(name, "_", "-"))
}

// AttributeName converts an attribute key to camel case ("data-id" -> "dataId").
func AttributeName(key string) string {
	return strcase.ToCamel(key)
}
