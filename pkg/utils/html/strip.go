// ABOUTME: HTML utilities for turning post markup into plain text
// ABOUTME: Used to build short post intros from feed descriptions

package html

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes tags, script and style content and decodes entities
func StripHTML(html string) string {
	if !strings.Contains(html, "<") && !strings.Contains(html, "&") {
		return collapseSpaces(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseSpaces(html)
	}
	doc.Find("script, style").Remove()

	return collapseSpaces(doc.Text())
}

// Truncate shortens text to at most limit runes, cutting at a word boundary
// when possible and appending an ellipsis.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
