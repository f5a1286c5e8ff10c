package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips markup from user supplied free text and trims it.
func Text(value string) string {
	cleaned := strict.Sanitize(value)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
