package domain

import "strings"

// IntentKind classifies an intent by the workflow it drives.
type IntentKind string

const (
	IntentBook      IntentKind = "book"
	IntentRecommend IntentKind = "recommend"
	IntentCancel    IntentKind = "cancel"

	// IntentOther is a catalog rule without workflow meaning. It is dispatched like
	// IntentUnknown but keeps its own canned response.
	IntentOther IntentKind = "other"

	// IntentUnknown is the sentinel returned when no rule matches.
	IntentUnknown IntentKind = "unknown"
)

// UnknownIntentName is the name carried by the sentinel intent.
const UnknownIntentName = "unknown"

// IntentRule is a catalog entry mapping trigger keywords to an intent.
// Rules are evaluated in catalog order; the first rule with a matching keyword wins.
type IntentRule struct {
	Name     string     `json:"intent" yaml:"intent" mapstructure:"intent"`
	Kind     IntentKind `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	Keywords []string   `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
	Response string     `json:"response" yaml:"response" mapstructure:"response"`
}

// Intent is the detected goal of a single turn.
type Intent struct {
	Name     string     `json:"name"`
	Kind     IntentKind `json:"kind"`
	Response string     `json:"response"`
}

// Intent converts the rule into the detected intent it produces.
func (r IntentRule) Intent() Intent {
	kind := r.Kind
	if kind == "" {
		kind = KindForName(r.Name)
	}
	return Intent{Name: r.Name, Kind: kind, Response: r.Response}
}

// UnknownIntent returns the sentinel intent used when no keyword matches.
func UnknownIntent() Intent {
	return Intent{Name: UnknownIntentName, Kind: IntentUnknown, Response: TextApology}
}

// KindForName infers the kind of a rule from its name.
// Both the German rule names of the reply language and their English equivalents are recognized.
func KindForName(name string) IntentKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "buchen", "book":
		return IntentBook
	case "empfehlen", "recommend":
		return IntentRecommend
	case "abbrechen", "cancel":
		return IntentCancel
	case UnknownIntentName:
		return IntentUnknown
	}
	return IntentOther
}

// Valid reports whether k is a declared kind.
func (k IntentKind) Valid() bool {
	switch k {
	case IntentBook, IntentRecommend, IntentCancel, IntentOther, IntentUnknown:
		return true
	}
	return false
}
