package blog

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimDash = regexp.MustCompile(`^-+|-+$`)
)

// turkishReplacer folds the Turkish letters that appear in post titles
// into their ASCII slug equivalents before the generic strip.
var turkishReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// Slugify turns a post title into a URL-safe slug.
func Slugify(title string) string {
	s := turkishReplacer.Replace(title)
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "-")
	s = slugTrimDash.ReplaceAllString(s, "")
	if s == "" {
		s = "post"
	}
	return s
}
