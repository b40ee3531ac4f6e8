package model

import (
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpace   = regexp.MustCompile(`\s+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
