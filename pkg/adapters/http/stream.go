package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/concierge/internal/logging"
	"github.com/aretw0/concierge/pkg/domain"
)

// SSE event names.
const (
	StreamState               = "state"
	StreamBookingConfirmation = "booking_confirmation"
)

// StreamEvent is one server-sent event.
type StreamEvent struct {
	Name string
	Data []byte
}

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan StreamEvent]struct{} // UserID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan StreamEvent]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a listener for a user. The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(userID string) (<-chan StreamEvent, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan StreamEvent, 10)
	if _, ok := sm.subscribers[userID]; !ok {
		sm.subscribers[userID] = make(map[chan StreamEvent]struct{})
	}
	sm.subscribers[userID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[userID]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, userID)
				}
			}
		})
	}
}

// Broadcast sends an event to every subscriber of a user without blocking.
func (sm *StreamManager) Broadcast(userID string, ev StreamEvent) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[userID] {
		select {
		case ch <- ev:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping event", "user_id", userID, "event", ev.Name)
		}
	}
}

// Publish broadcasts the state diff of a turn and, when it confirmed a booking, the booking.
func (sm *StreamManager) Publish(userID string, prior *domain.SessionState, turn *domain.Turn) {
	if diff := domain.Diff(userID, prior, &turn.Session); diff != nil {
		if data, err := json.Marshal(diff); err == nil {
			sm.Broadcast(userID, StreamEvent{Name: StreamState, Data: data})
		}
	}
	if turn.Confirmed() {
		if data, err := json.Marshal(turn.Booking); err == nil {
			sm.Broadcast(userID, StreamEvent{Name: StreamBookingConfirmation, Data: data})
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	userID, status, err := s.resolveUser(r, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(userID)
	defer cancel()
	s.logger.Info("SSE: client subscribed", "user_id", userID)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "user_id", userID)
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, ev.Data)
			flusher.Flush()
		}
	}
}
