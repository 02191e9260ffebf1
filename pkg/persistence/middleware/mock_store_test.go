package middleware_test

import (
	"context"
	"errors"

	"github.com/aretw0/concierge/pkg/domain"
	"github.com/aretw0/concierge/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data    map[string]*domain.Session
	failing bool
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Session),
	}
}

var errBackend = errors.New("backend unavailable")

func (s *MockStore) Save(ctx context.Context, userID string, sess *domain.Session) error {
	if s.failing {
		return errBackend
	}
	s.data[userID] = sess.Clone()
	return nil
}

func (s *MockStore) Load(ctx context.Context, userID string) (*domain.Session, error) {
	if s.failing {
		return nil, errBackend
	}
	sess, ok := s.data[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *MockStore) Delete(ctx context.Context, userID string) error {
	if s.failing {
		return errBackend
	}
	delete(s.data, userID)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	if s.failing {
		return nil, errBackend
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.SessionStore = (*MockStore)(nil)
