package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a display title safe to use as a filename on the
// common filesystems. Slashes, backslashes, colons, and asterisks become
// dashes; the remaining reserved characters and control characters are
// removed; runs of whitespace collapse to single spaces. Trailing dots and
// spaces are trimmed so Windows-style names stay valid. Non-ASCII letters
// pass through untouched, and the same rule applies on every platform so
// derived output names stay portable.
func SanitizeFileName(name string) string {
	name = fileNameReplacer.Replace(name)

	var b strings.Builder
	b.Grow(len(name))
	pendingSpace := false
	for _, r := range name {
		switch {
		case unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			pendingSpace = true
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}

	return strings.TrimRight(b.String(), ". ")
}
