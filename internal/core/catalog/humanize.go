package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize turns a raw field name (snake_case or camelCase) into a
// "Title Case" label: "archive_reason" and "archiveReason" both become
// "Archive Reason".
func Humanize(name string) string {
	if name == "" {
		return ""
	}

	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	prevUpper := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			prevUpper = false
		case unicode.IsUpper(r):
			// Start a new word only at the beginning of an uppercase run,
			// so acronyms like "taskID" stay one word.
			if !prevUpper {
				flush()
			}
			current.WriteRune(unicode.ToLower(r))
			prevUpper = true
		default:
			current.WriteRune(r)
			prevUpper = false
		}
	}
	flush()

	// cases.Caser carries mutable transform state, so it cannot be shared
	// between goroutines; construct one per call.
	return cases.Title(language.AmericanEnglish).String(strings.Join(words, " "))
}
