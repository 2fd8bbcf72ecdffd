package common

import (
	"regexp"
	"strings"
)

var (
	slugSpaces = regexp.MustCompile(`\s+`)
	slugStrip  = regexp.MustCompile(`[^\w-]+`)
)

// Slugify lowercases and trims text, collapses whitespace runs into single
// hyphens, and strips anything that is not a word character or hyphen.
// Used to build Drive filenames from supplier and description text.
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugStrip.ReplaceAllString(s, "")
}
