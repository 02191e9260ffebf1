package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under Limit", DefaultMaxInputSize - 1, false},
		{"Exact Limit", DefaultMaxInputSize, false},
		{"Over Limit", DefaultMaxInputSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.size))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_Whitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain", "Hotel Adler", "Hotel Adler"},
		{"Tab And Newline", "wifi\tfrühstück\nspa", "wifi frühstück spa"},
		{"Vertical Tab", "wifi\vfrühstück", "wifi frühstück"},
		{"Form Feed", "wifi\ffrühstück", "wifi frühstück"},
		{"NBSP", "Hotel\u00a0Adler", "Hotel Adler"},
		{"Ideographic Space", "wifi\u3000spa", "wifi spa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ANSI Code", "\x1b[31mbuchen\x1b[0m", "[31mbuchen[0m"},
		{"Null Byte", "bu\x00chen", "buchen"},
		{"Bell", "abbrechen\x07", "abbrechen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	_, err := SanitizeInput("reservieren")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	_, err = SanitizeInput("buchen")
	assert.NoError(t, err)
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("fr\xfchst\xfcck")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
