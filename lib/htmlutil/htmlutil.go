package htmlutil

import (
	"regexp"
	"strings"
	"unicode"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func RemoveNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// RemoveNonPrintableKeepNewlines is RemoveNonPrintable for multi-line
// section bodies where the newlines carry structure.
func RemoveNonPrintableKeepNewlines(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if c == '\n' || unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText collapses an extracted text node down to a single line,
// encyclopedia pages are full of layout whitespace and zero-width
// characters that would otherwise leak into field values.
func CleanText(s string) string {
	s = RemoveNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags drops markup from a fragment of raw html. section bodies
// keep <br> separated paragraphs so those turn into newlines first.
func StripTags(fragment string) string {
	fragment = strings.NewReplacer(
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
	).Replace(fragment)
	return tagPattern.ReplaceAllString(fragment, "")
}
