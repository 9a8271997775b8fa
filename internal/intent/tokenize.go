package intent

import "strings"

// tokenize lowercases and splits a phrase into whitespace-separated tokens
// (spec §4.5: "pattern rules against a lowercase, tokenized input").
func tokenize(phrase string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(phrase)))
}
