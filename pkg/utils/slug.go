package utils

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// GenerateSlug creates a URL-friendly slug from a string.
// Lowercase, runs of non-alphanumerics collapse to a single hyphen,
// leading/trailing hyphens stripped. Idempotent.
func GenerateSlug(input string) string {
	slug := strings.ToLower(input)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
