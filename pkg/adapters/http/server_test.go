package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/concierge"
	"github.com/aretw0/concierge/pkg/catalog"
	"github.com/aretw0/concierge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *concierge.Engine {
	t.Helper()
	eng, err := concierge.New(catalog.Default(), concierge.WithReferenceGenerator(func() string { return "REF-1" }))
	require.NoError(t, err)
	return eng
}

func postChat(t *testing.T, h http.Handler, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(data))
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeChat(t *testing.T, rr *httptest.ResponseRecorder) ChatResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/info", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "concierge-http", resp["app"])
	assert.Equal(t, strings.TrimSpace(concierge.Version), resp["version"])
	assert.Equal(t, false, resp["auth"])
}

func TestListHotels(t *testing.T) {
	eng := newTestEngine(t)
	handler := NewHandler(eng)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var hotels []domain.Accommodation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hotels))
	assert.Equal(t, eng.Catalog().Accommodations(), hotels)
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("concierge_turns_total 1\n"))
	})

	rr := httptest.NewRecorder()
	NewHandler(newTestEngine(t)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code, "metrics are only routed when configured")

	rr = httptest.NewRecorder()
	NewHandler(newTestEngine(t), WithMetricsHandler(metrics)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "concierge_turns_total")
}

func TestChat_BookingFlow(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	resp := decodeChat(t, postChat(t, handler, ChatRequest{UserID: "alice", Message: "buchen"}, nil))
	assert.Equal(t, domain.StepSelectHotel, resp.Session.Step)

	decodeChat(t, postChat(t, handler, ChatRequest{UserID: "alice", Message: "Hotel Adler"}, nil))
	decodeChat(t, postChat(t, handler, ChatRequest{UserID: "alice", Message: "wifi"}, nil))
	resp = decodeChat(t, postChat(t, handler, ChatRequest{UserID: "alice", Message: "2"}, nil))
	assert.Contains(t, resp.Response, "$260")
	assert.Nil(t, resp.Booking)

	resp = decodeChat(t, postChat(t, handler, ChatRequest{UserID: "alice", Message: "bestätigen"}, nil))
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "REF-1", resp.Booking.Reference)
	assert.Equal(t, 260.0, resp.Booking.TotalPrice)
	assert.Equal(t, domain.StepBookingCompleted, resp.Session.Step)
}

func TestChat_InvalidMessage(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	resp := decodeChat(t, postChat(t, handler, map[string]any{"userId": "bob", "message": 42}, nil))
	assert.Equal(t, domain.TextInvalidMessage, resp.Response)
	assert.Equal(t, domain.StepInitial, resp.Session.Step)
}

func TestChat_BadRequests(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	rr := postChat(t, handler, ChatRequest{Message: "hallo"}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "user id is required without authentication")

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChat_RateLimited(t *testing.T) {
	handler := NewHandler(newTestEngine(t), WithRateLimit(0.001, 2))

	assert.Equal(t, http.StatusOK, postChat(t, handler, ChatRequest{UserID: "carol", Message: "hallo"}, nil).Code)
	assert.Equal(t, http.StatusOK, postChat(t, handler, ChatRequest{UserID: "carol", Message: "hallo"}, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, postChat(t, handler, ChatRequest{UserID: "carol", Message: "hallo"}, nil).Code)

	assert.Equal(t, http.StatusOK, postChat(t, handler, ChatRequest{UserID: "dave", Message: "hallo"}, nil).Code, "limits are per user")
}

func TestSessions_GetAndDelete(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/erin", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	decodeChat(t, postChat(t, handler, ChatRequest{UserID: "erin", Message: "buchen"}, nil))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/erin", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var sess domain.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, "erin", sess.UserID)
	assert.Equal(t, domain.StepSelectHotel, sess.State.Step)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/sessions/erin", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/erin", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORS_Preflight(t *testing.T) {
	handler := NewHandler(newTestEngine(t), WithAllowedOrigins([]string{"https://hotel.example"}))

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://hotel.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "https://hotel.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_Session(t *testing.T) {
	handler := NewHandler(newTestEngine(t))
	srv := httptest.NewServer(handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?userId=frank", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan string, 32)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			events <- scanner.Text()
		}
		close(events)
	}()

	next := func() string {
		select {
		case line, ok := <-events:
			require.True(t, ok, "stream closed early")
			return line
		case <-ctx.Done():
			t.Fatal("timed out waiting for event")
			return ""
		}
	}
	expectEvent := func(name string) string {
		for {
			if next() == "event: "+name {
				return strings.TrimPrefix(next(), "data: ")
			}
		}
	}

	// The subscription is registered before the ping is written.
	assert.Equal(t, "connected", expectEvent("ping"))

	for _, msg := range []string{"buchen", "Hotel Spree", "wifi", "3"} {
		body, _ := json.Marshal(ChatRequest{UserID: "frank", Message: msg})
		r, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		r.Body.Close()
	}

	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(expectEvent(StreamState)), &diff))
	assert.Equal(t, "frank", diff.UserID)
	require.NotNil(t, diff.Step)
	assert.Equal(t, domain.StepSelectHotel, *diff.Step)

	body, _ := json.Marshal(ChatRequest{UserID: "frank", Message: "bestätigen"})
	r, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	r.Body.Close()

	var booking domain.BookingRecord
	require.NoError(t, json.Unmarshal([]byte(expectEvent(StreamBookingConfirmation)), &booking))
	assert.Equal(t, "Hotel Spree", booking.HotelName)
	assert.Equal(t, 305.0, booking.TotalPrice)
}

func TestStreamManager_UnsubscribeIsIdempotent(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("u")

	sm.Broadcast("u", StreamEvent{Name: "x", Data: []byte("1")})
	ev := <-ch
	assert.Equal(t, "x", ev.Name)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	sm.Broadcast("u", StreamEvent{Name: "x"})
}
