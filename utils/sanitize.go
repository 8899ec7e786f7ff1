package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Zero tags, zero attributes: user text is stored as plain text only.
var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeInput strips all markup from free-text input before it reaches
// persistence.
func SanitizeInput(input string) string {
	if input == "" {
		return input
	}
	return strings.TrimSpace(sanitizePolicy.Sanitize(input))
}
