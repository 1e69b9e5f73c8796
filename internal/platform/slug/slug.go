// Package slug derives filesystem-safe name fragments from free-form
// strings such as account emails.
package slug

import (
	"regexp"
	"strings"
)

var unsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases the input and collapses every run of characters
// outside [a-z0-9] into a single dash. Inputs with nothing usable left
// yield "default".
func Make(input string) string {
	cleaned := unsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(input)), "-")
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		return "default"
	}
	return cleaned
}
