package util

import (
	"regexp"
	"strings"
)

var linkRegex = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// ExtractLinks finds all http(s) URLs in a string, in order, without duplicates.
func ExtractLinks(text string) []string {
	matches := linkRegex.FindAllString(text, -1)
	links := make([]string, 0, len(matches))
	seen := make(map[string]bool)

	for _, match := range matches {
		link := strings.TrimRight(match, ".,;:")
		if !seen[link] {
			links = append(links, link)
			seen[link] = true
		}
	}
	return links
}

// StripLinks removes every URL from text.
func StripLinks(text string) string {
	return linkRegex.ReplaceAllString(text, "")
}
