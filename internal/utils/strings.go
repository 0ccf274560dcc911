package utils

import (
	"strings"

	"github.com/PolarWolf314/dreamlog/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// ParseList splits a comma-separated flag value, trimming whitespace and
// dropping empty items.
func ParseList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseHashtags parses comma-separated hashtag labels, dropping a leading
// '#' from each. Only the first max labels are kept.
func ParseHashtags(value string, max int) []string {
	var labels []string
	for _, item := range ParseList(value) {
		if label := strings.TrimSpace(strings.TrimPrefix(item, "#")); label != "" {
			labels = append(labels, label)
		}
		if len(labels) == max {
			break
		}
	}
	return labels
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
