package http

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/aretw0/concierge/pkg/domain"
	"github.com/aretw0/concierge/pkg/runner"
	"github.com/gorilla/websocket"
)

const textRateLimited = "Zu viele Nachrichten. Bitte warten Sie einen Moment."

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(s.allowedOrigins, "*") || slices.Contains(s.allowedOrigins, origin)
		},
	}
}

// ServeWS handles the GET /ws request. Every inbound frame is one message; the server
// answers with a "response" event and, when a booking is confirmed, a separate
// "booking_confirmation" event.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, status, err := s.resolveUser(r, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	s.logger.Info("websocket connected", "user_id", userID)
	defer s.logger.Info("websocket disconnected", "user_id", userID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", "user_id", userID, "err", err)
			}
			return
		}

		if !s.limiter.Allow(userID) {
			if err := conn.WriteJSON(runner.Event{Type: runner.EventSystem, UserID: userID, Message: textRateLimited}); err != nil {
				return
			}
			continue
		}

		turn, err := s.turn(r, userID, decodeFrame(data))
		if err != nil {
			s.logger.Error("websocket turn failed", "user_id", userID, "err", err)
			return
		}
		if err := writeTurn(conn, turn); err != nil {
			s.logger.Warn("websocket write failed", "user_id", userID, "err", err)
			return
		}
	}
}

func writeTurn(conn *websocket.Conn, turn *domain.Turn) error {
	session := turn.Session
	err := conn.WriteJSON(runner.Event{
		Type:     runner.EventResponse,
		UserID:   turn.UserID,
		Response: turn.Response,
		Session:  &session,
	})
	if err != nil || !turn.Confirmed() {
		return err
	}
	return conn.WriteJSON(runner.Event{
		Type:    runner.EventBookingConfirmation,
		UserID:  turn.UserID,
		Booking: turn.Booking,
	})
}

// decodeFrame accepts {"message": ...} objects and JSON strings, and falls back to the raw text.
// An object without a message yields nil, which the engine answers as an invalid message.
func decodeFrame(data []byte) any {
	var in struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(data, &in); err == nil {
		return in.Message
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return text
	}
	return string(data)
}
