package dialogue

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// capitalize upper-cases the first letter, leaving the rest untouched.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// price formats an amount with the catalog currency and the shortest exact decimal form.
func (m *Machine) price(v float64) string {
	return m.catalog.Currency() + strconv.FormatFloat(v, 'f', -1, 64)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
