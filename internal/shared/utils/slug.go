package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s_-]+`)
	spaceRuns    = regexp.MustCompile(`[\s_]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)

	// letters NFD does not decompose into base + mark
	foldExtra = strings.NewReplacer("đ", "d", "Đ", "D", "ß", "ss", "æ", "ae", "Æ", "AE", "ø", "o", "Ø", "O", "ł", "l", "Ł", "L")
)

// GenerateSlug turns a title into a URL-safe slug:
// "My First Post!" -> "my-first-post", "Café Crème" -> "cafe-creme".
func GenerateSlug(input string) string {
	lower := strings.ToLower(RemoveDiacritics(input))
	cleaned := nonSlugChars.ReplaceAllString(lower, "")
	hyphenated := spaceRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(hyphenRuns.ReplaceAllString(hyphenated, "-"), "-")
}

// RemoveDiacritics strips combining marks after canonical decomposition.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, foldExtra.Replace(input))
	if err != nil {
		return input
	}
	return out
}
