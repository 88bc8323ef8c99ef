// Package catalog loads poems and their scansions from TOML poem files.
package catalog

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	dashRe  = regexp.MustCompile(` *-- *| *– *| *— *`)
	slashRe = regexp.MustCompile(` */ *`)
)

// Words splits poem text into display words per line. Dashes and slashes separate words,
// tokens without a letter are dropped, and blank lines stay as empty lines so the result
// lines up with the scansion text format.
func Words(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return [][]string{}
	}
	text = dashRe.ReplaceAllString(text, " ")
	text = slashRe.ReplaceAllString(text, " ")

	rows := strings.Split(text, "\n")
	out := make([][]string, len(rows))
	for i, row := range rows {
		words := []string{}
		for _, field := range strings.Fields(row) {
			if hasLetter(field) {
				words = append(words, field)
			}
		}
		out[i] = words
	}
	return out
}

// FirstLine returns the first non-blank line of text.
func FirstLine(text string) string {
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func hasLetter(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
