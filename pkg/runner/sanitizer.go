package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds a single chat message in bytes.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "CONCIERGE_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("message exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("message contains invalid UTF-8 sequences")
)

// SanitizeInput prepares a chat message for tokenizing.
//
// Oversized or non UTF-8 messages are rejected. Every whitespace rune (tabs, line
// breaks, vertical tab, form feed, NBSP and the other Unicode spaces) becomes a plain
// space so it still separates words. Remaining control characters such as ESC, NUL
// or BEL are dropped.
func SanitizeInput(message string) (string, error) {
	limit := maxInputSize()
	if len(message) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(message), limit)
	}
	if !utf8.ValidString(message) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(message, needsRewrite) < 0 {
		return message, nil
	}

	var b strings.Builder
	b.Grow(len(message))
	for _, r := range message {
		switch {
		case r == ' ':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func needsRewrite(r rune) bool {
	return r != ' ' && (unicode.IsSpace(r) || unicode.IsControl(r))
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
