package domain

import "time"

// Session is what the session store keeps per user: the last detected intent,
// the last extracted entities and the resulting workflow state.
type Session struct {
	UserID    string       `json:"userId"`
	Intent    *Intent      `json:"intent,omitempty"`
	Entities  Entities     `json:"entities"`
	State     SessionState `json:"state"`
	UpdatedAt time.Time    `json:"updatedAt,omitzero"`

	// Sealed carries the encrypted form of the session when an encrypting
	// store middleware is in use. It is empty on decrypted sessions.
	Sealed string `json:"sealed,omitempty"`
}

// NewSession creates the lazily-initialized session of a first-time user.
func NewSession(userID string) *Session {
	return &Session{
		UserID: userID,
		State:  NewSessionState(),
	}
}

// Clone returns a deep enough copy for store isolation.
func (s *Session) Clone() *Session {
	out := *s
	out.State = s.State.Clone()
	if s.Entities.Services != nil {
		out.Entities.Services = append([]string(nil), s.Entities.Services...)
	}
	if s.Intent != nil {
		intent := *s.Intent
		out.Intent = &intent
	}
	return &out
}
