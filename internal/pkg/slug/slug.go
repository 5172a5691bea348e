// Package slug derives URL-safe identifiers from human readable names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Make normalises name into a slug candidate:
//
//	"Café  Lisboa!" -> "cafe-lisboa"
//
// The result only contains a-z, 0-9, '_' and single '-' separators and never
// starts or ends with a hyphen. It is empty when name has no usable characters.
func Make(name string) string {
	lowered := strings.ToLower(name)

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		folded = lowered
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	s := whitespaceRun.ReplaceAllString(b.String(), "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix returns the n-th disambiguated candidate for base, e.g. "cafe-lisboa-2".
func WithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}
