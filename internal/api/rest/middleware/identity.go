package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/beginnergain/server/internal/logger"
	"github.com/beginnergain/server/internal/model"
)

// AccessCookieName is the cookie the client stores the user id in after login.
const AccessCookieName = "accessId"

// TokenParser resolves user IDs from bearer access tokens.
type TokenParser interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// Identity resolves the caller's identity from the accessId cookie or a
// bearer token and injects it into the request context. It never rejects;
// handlers that need an identity use Require on top of it.
type Identity struct {
	tokenParser    TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewIdentity creates a new Identity middleware instance.
func NewIdentity(tokenParser TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Identity {
	return &Identity{tokenParser: tokenParser, contextManager: contextManager, logger: logger}
}

// Handle resolves the identity when present and passes the request on.
func (m *Identity) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := m.resolveUser(r); ok {
			r = r.WithContext(m.contextManager.SetUserIDToContext(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests whose identity was not resolved by Handle.
func (m *Identity) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.contextManager.GetUserIDFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Identity) resolveUser(r *http.Request) (uuid.UUID, bool) {
	if cookie, err := r.Cookie(AccessCookieName); err == nil && cookie.Value != "" {
		userID, err := uuid.Parse(cookie.Value)
		if err == nil {
			return userID, true
		}
		m.logger.Debug("Identity middleware: malformed access cookie",
			"error", err.Error())
	}

	authHeader := r.Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != "" && token != authHeader {
		userID, err := m.tokenParser.ParseAccessToken(token)
		if err == nil && userID != uuid.Nil {
			return userID, true
		}
	}

	return uuid.Nil, false
}
