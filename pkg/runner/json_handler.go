package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/concierge/pkg/domain"
)

// Event types written by JSONHandler.
const (
	EventResponse            = "response"
	EventBookingConfirmation = "booking_confirmation"
	EventSystem              = "system"
)

// Event is one line of JSONHandler output.
type Event struct {
	Type     string                `json:"type"`
	UserID   string                `json:"userId,omitempty"`
	Response string                `json:"response,omitempty"`
	Session  *domain.SessionState  `json:"session,omitempty"`
	Booking  *domain.BookingRecord `json:"booking,omitempty"`
	Message  string                `json:"message,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
//
// Each input line is either a JSON object with a "message" field, a JSON string,
// or plain text. The "message" value is passed through untyped, so a number or
// object reaches the engine and is answered as an invalid message.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Input(ctx context.Context) (any, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, err := h.Reader.ReadString('\n')
		text := strings.TrimSpace(line)
		if text == "" {
			if err != nil {
				return "", err
			}
			continue
		}
		return decodeInput(text), nil
	}
}

func decodeInput(text string) any {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if strings.HasPrefix(text, "{") && json.Unmarshal([]byte(text), &envelope) == nil && envelope.Message != nil {
		var v any
		if err := json.Unmarshal(envelope.Message, &v); err == nil {
			return v
		}
	}

	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		return s
	}

	// Fallback: plain text
	return text
}

// Reply writes a response event and, on confirmation, a separate booking_confirmation event.
func (h *JSONHandler) Reply(ctx context.Context, turn *domain.Turn) error {
	session := turn.Session
	if err := h.Encoder.Encode(Event{
		Type:     EventResponse,
		UserID:   turn.UserID,
		Response: turn.Response,
		Session:  &session,
	}); err != nil {
		return err
	}
	if turn.Booking != nil {
		return h.Encoder.Encode(Event{
			Type:    EventBookingConfirmation,
			UserID:  turn.UserID,
			Booking: turn.Booking,
		})
	}
	return nil
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Event{Type: EventSystem, Message: msg})
}
