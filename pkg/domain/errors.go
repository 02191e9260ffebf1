package domain

import "errors"

// ErrSessionNotFound is returned when a user has no stored session.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidCatalog is returned when catalog data violates its invariants.
var ErrInvalidCatalog = errors.New("invalid catalog")
