package nlu

import (
	"fmt"
	"slices"
	"strings"
)

// ServiceMatcher decides whether a service phrase is mentioned in a tokenized message.
type ServiceMatcher interface {
	Match(tokens []string, phrase string) bool
}

// MatcherFunc adapts a function to ServiceMatcher.
type MatcherFunc func(tokens []string, phrase string) bool

func (f MatcherFunc) Match(tokens []string, phrase string) bool {
	return f(tokens, phrase)
}

// TokenSubset matches a phrase when every one of its words appears somewhere in the
// message, in any order and without adjacency. "service im room" matches "room service".
var TokenSubset ServiceMatcher = MatcherFunc(func(tokens []string, phrase string) bool {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !slices.Contains(tokens, w) {
			return false
		}
	}
	return true
})

// Phrase matches a phrase only when its words appear contiguously and in order.
var Phrase ServiceMatcher = MatcherFunc(func(tokens []string, phrase string) bool {
	words := strings.Fields(phrase)
	if len(words) == 0 || len(words) > len(tokens) {
		return false
	}
	for i := 0; i+len(words) <= len(tokens); i++ {
		if slices.Equal(tokens[i:i+len(words)], words) {
			return true
		}
	}
	return false
})

// MatcherByName resolves a configured matcher name ("subset" or "phrase").
func MatcherByName(name string) (ServiceMatcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "subset", "token-subset":
		return TokenSubset, nil
	case "phrase", "strict":
		return Phrase, nil
	}
	return nil, fmt.Errorf("unknown service matcher %q", name)
}
