package nlu

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/aretw0/concierge/pkg/catalog"
	"github.com/aretw0/concierge/pkg/domain"
)

var digits = regexp.MustCompile(`^\d+$`)

// Extractor detects the intent and entities of a message against a catalog.
type Extractor struct {
	catalog *catalog.Catalog
	matcher ServiceMatcher
}

// NewExtractor creates an extractor. A nil matcher selects TokenSubset.
func NewExtractor(c *catalog.Catalog, matcher ServiceMatcher) *Extractor {
	if matcher == nil {
		matcher = TokenSubset
	}
	return &Extractor{catalog: c, matcher: matcher}
}

// Extract returns the detected intent and the entities of the message.
// Fields the message does not supply fall back to prior.
func (e *Extractor) Extract(message string, prior domain.Entities) (domain.Intent, domain.Entities) {
	tokens := Tokenize(message)
	return e.DetectIntent(tokens), e.entities(message, tokens, prior)
}

// DetectIntent returns the first catalog rule with a keyword among the tokens,
// or the unknown sentinel.
func (e *Extractor) DetectIntent(tokens []string) domain.Intent {
	for _, rule := range e.catalog.Intents() {
		for _, k := range rule.Keywords {
			if slices.Contains(tokens, k) {
				return rule.Intent()
			}
		}
	}
	return domain.UnknownIntent()
}

func (e *Extractor) entities(message string, tokens []string, prior domain.Entities) domain.Entities {
	out := domain.Entities{
		Accommodation: prior.Accommodation,
		Country:       prior.Country,
		City:          prior.City,
		People:        prior.People,
		Services:      e.services(tokens),
		Confirm:       slices.Contains(tokens, domain.ConfirmToken),
	}

	if a, ok := e.catalog.Accommodation(Normalize(message)); ok {
		out.Accommodation = a
	}
	if country, ok := firstToken(e.catalog.Countries(), tokens); ok {
		out.Country = country
	}
	if city, ok := firstToken(e.catalog.Cities(), tokens); ok {
		out.City = city
	}
	if people, ok := firstNumber(tokens); ok {
		out.People = &people
	}

	return out
}

func (e *Extractor) services(tokens []string) []string {
	var out []string
	for _, phrase := range e.catalog.Services() {
		if e.matcher.Match(tokens, phrase) {
			out = append(out, phrase)
		}
	}
	return out
}

// firstToken returns the first candidate (in candidate order) present among the tokens.
func firstToken(candidates, tokens []string) (string, bool) {
	for _, c := range candidates {
		if slices.Contains(tokens, c) {
			return c, true
		}
	}
	return "", false
}

// firstNumber returns the first all-digit token. A token too large for an int is not a match.
func firstNumber(tokens []string) (int, bool) {
	for _, t := range tokens {
		if !digits.MatchString(t) {
			continue
		}
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
