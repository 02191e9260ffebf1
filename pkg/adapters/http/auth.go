package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type identityKey struct{}

var (
	errMissingToken = errors.New("missing bearer token")
	errNoIdentity   = errors.New("token carries neither email nor sub")
)

// IdentityFromContext returns the authenticated user id, if any.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok && id != ""
}

// authenticate verifies the bearer token and stores the identity on the request context.
// Browsers cannot set headers on websocket or EventSource requests, so the token may also
// arrive as the "token" query parameter.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, errMissingToken.Error())
			return
		}
		id, err := s.verify(raw)
		if err != nil {
			s.logger.Warn("authentication failed", "err", err, "remote", r.RemoteAddr)
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
	})
}

func (s *Server) verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errNoIdentity
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email, nil
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub, nil
	}
	return "", errNoIdentity
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// resolveUser picks the user a request acts for. An authenticated identity always wins,
// and asking for another user is forbidden.
func (s *Server) resolveUser(r *http.Request, requested string) (string, int, error) {
	requested = strings.TrimSpace(requested)
	if id, ok := IdentityFromContext(r.Context()); ok {
		if requested != "" && requested != id {
			return "", http.StatusForbidden, errors.New("token does not grant access to this user")
		}
		return id, 0, nil
	}
	if requested == "" {
		return "", http.StatusBadRequest, errors.New("userId is required")
	}
	return requested, 0, nil
}
