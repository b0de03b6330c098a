package shortcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tag", "tag"},
		{"Section", "section"},
		{"et_pb_section", "et-pb-section"},
		{"et-pb-row", "et-pb-row"},
		{"myTag", "my-tag"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.input))
		})
	}
}

func TestAttributeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"title", "title"},
		{"data-id", "dataId"},
		{"admin_label", "adminLabel"},
		{"fooBar", "fooBar"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, AttributeName(tt.input))
		})
	}
}

func TestAttributeString(t *testing.T) {
	attrs := NewAttributes()
	assert.Equal(t, "", AttributeString(attrs))

	attrs.Set("data-id", "5")
	attrs.Set("title", `a "b" & c`)
	assert.Equal(t, `dataId="5" title="a &quot;b&quot; &amp; c"`, AttributeString(attrs))
}
