package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/concierge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Reply(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf,
		WithTextHandlerRenderer(func(s string) (string, error) {
			return "Rendered: " + s, nil
		}),
	)

	err := handler.Reply(context.Background(), &domain.Turn{Response: "Hallo"})
	require.NoError(t, err)
	assert.Equal(t, "Rendered: Hallo\n", outBuf.String())
}

func TestTextHandler_ReplyWithBooking(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)

	err := handler.Reply(context.Background(), &domain.Turn{
		Response: "Buchung bestätigt.",
		Booking: &domain.BookingRecord{
			Reference:  "ref-9",
			HotelName:  "Alpenhof",
			Country:    "Deutschland",
			City:       "München",
			Services:   []string{"spa"},
			People:     2,
			TotalPrice: 300,
		},
	})
	require.NoError(t, err)

	out := outBuf.String()
	assert.Contains(t, out, "[Buchungsbestätigung] ref-9")
	assert.Contains(t, out, "Alpenhof (München, Deutschland)")
	assert.Contains(t, out, "Services: spa")
	assert.Contains(t, out, "Gesamt:   300")
}

func TestTextHandler_Input(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("\n  my user input  \nsecond"), outBuf, WithPrompt("? "))
	ctx := context.Background()

	val, err := handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "my user input", val, "blank lines are skipped and text is trimmed")

	val, err = handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", val, "a final line without newline is still read")

	_, err = handler.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, strings.HasPrefix(outBuf.String(), "? "))
}

func TestTextHandler_InputCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	handler := NewTextHandler(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
