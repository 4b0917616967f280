package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// minorWords stay lowercase inside a title unless they lead it.
var minorWords = map[string]struct{}{
	"a":    {},
	"an":   {},
	"the":  {},
	"in":   {},
	"on":   {},
	"at":   {},
	"for":  {},
	"to":   {},
	"of":   {},
	"with": {},
	"by":   {},
}

// FormatTitle normalizes the casing of a show or episode title. Every word is
// capitalized except articles and short prepositions, which are lowercased
// unless they start the title.
func FormatTitle(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		lower := strings.ToLower(word)
		if i > 0 {
			if _, minor := minorWords[lower]; minor {
				words[i] = lower
				continue
			}
		}
		words[i] = titleCaser.String(word)
	}

	return strings.Join(words, " ")
}

// TitleCase capitalizes every whitespace-separated word, minor words included.
// It matches how a selected show's display name is cased in proposed filenames.
func TitleCase(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		words[i] = titleCaser.String(word)
	}

	return strings.Join(words, " ")
}

var sanitizeReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	"/", "_",
	`\`, "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// Sanitize replaces each character that is illegal in filesystem names with an
// underscore. Applying it twice gives the same result as applying it once.
func Sanitize(name string) string {
	return sanitizeReplacer.Replace(name)
}
