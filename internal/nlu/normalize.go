// Package nlu turns raw user text into tokens, an intent and entities.
//
// The matching is deliberately keyword based: no stemming, no ambiguity resolution
// beyond first match.
package nlu

import (
	"strings"
	"unicode"
)

// Normalize lowercases and trims the message.
func Normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// Tokenize normalizes the message and splits it on runs of Unicode whitespace and/or
// commas. Empty input yields an empty, non-nil slice.
func Tokenize(message string) []string {
	tokens := strings.FieldsFunc(Normalize(message), isSeparator)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
