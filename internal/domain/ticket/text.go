package ticket

import (
	"html"
	"strings"
)

// EscapeText trims s and escapes it for safe embedding in HTML
func EscapeText(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
