package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name      string
		blockType string
		title     string
		content   string
		want      string
	}{
		{
			name:      "plain text",
			blockType: "text",
			title:     "A Note",
			content:   "hello world",
			want:      "<b>A Note</b>\n\nhello world",
		},
		{
			name:      "code gets a fixed-width block",
			blockType: "code",
			title:     "Snippet",
			content:   "fmt.Println(42)",
			want:      "<b>Snippet</b>\n\n<pre><code>fmt.Println(42)</code></pre>",
		},
		{
			name:      "poetry marks each line to preserve breaks",
			blockType: "poetry",
			title:     "Haiku",
			content:   "old pond\nfrog jumps in\nwater sound",
			want:      "<b>Haiku</b>\n\n<i>old pond</i>\n<i>frog jumps in</i>\n<i>water sound</i>",
		},
		{
			name:      "unknown type falls back to plain",
			blockType: "journal",
			title:     "Day 1",
			content:   "it rained",
			want:      "<b>Day 1</b>\n\nit rained",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMessage(tt.blockType, tt.title, tt.content))
		})
	}
}

func TestTextTypes(t *testing.T) {
	for _, typ := range []string{"text", "poetry", "code"} {
		assert.True(t, textTypes[typ], typ)
	}
	assert.False(t, textTypes["image"])
}
