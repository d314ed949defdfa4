package catalog

import (
	"strings"
	"unicode"
)

// Slugify lowercases the name and collapses every run of non-alphanumerics
// into a single hyphen. The result is stable for a given input, which keeps
// recomputed slugs byte-identical across writes.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
