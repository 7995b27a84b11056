package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

const maxTextLength = 1000

// SanitizeString trims and bounds free-form user text
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > maxTextLength {
		input = input[:maxTextLength]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeMessage prepares message content for storage: tags stripped,
// whitespace trimmed, length bounded.
func SanitizeMessage(input string) string {
	return SanitizeString(SanitizeHTML(input))
}
