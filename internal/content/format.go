package content

import (
	"fmt"
	"strings"
)

// textTypes are the content types mirrored to Telegram as a side
// notification when the relay backend is selected.
var textTypes = map[string]bool{"text": true, "poetry": true, "code": true}

// FormatMessage renders a content block as a Telegram HTML message. Code is
// wrapped in a fixed-width block; poetry gets each line marked up separately
// so Telegram preserves the line breaks.
func FormatMessage(blockType, title, content string) string {
	switch blockType {
	case "code":
		return fmt.Sprintf("<b>%s</b>\n\n<pre><code>%s</code></pre>", title, content)
	case "poetry":
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			lines[i] = "<i>" + line + "</i>"
		}
		return fmt.Sprintf("<b>%s</b>\n\n%s", title, strings.Join(lines, "\n"))
	default:
		return fmt.Sprintf("<b>%s</b>\n\n%s", title, content)
	}
}
