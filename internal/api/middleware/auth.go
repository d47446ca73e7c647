package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/api/shared"
	"github.com/youchat/youchat-api/internal/platform/logger"
	"github.com/youchat/youchat-api/internal/service/auth"
)

// AuthMiddleware validates JWT access tokens and attaches the user ID to the
// request context.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates an AuthMiddleware using the given JWT service.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate requires a valid Bearer token. Requests without one receive
// 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			log := logger.FromContext(r.Context())
			log.Debug("authentication failed", "error", err, "path", r.URL.Path)
			shared.RespondWithError(w, http.StatusUnauthorized, authFailureMessage(err))
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches the user ID when a valid Bearer token is
// present and passes the request through anonymously otherwise. Malformed or
// expired tokens are still rejected so clients learn their token is bad.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.claimsFromRequest(r)
		if err != nil {
			shared.RespondWithError(w, http.StatusUnauthorized, authFailureMessage(err))
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) claimsFromRequest(r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, auth.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, auth.ErrInvalidToken
	}

	return m.jwtService.ValidateToken(r.Context(), parts[1])
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "Authentication required"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	default:
		return "Invalid authentication token"
	}
}

// UserIDFromContext extracts the authenticated user ID from the context,
// returning uuid.Nil when the request is anonymous.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(shared.UserIDContextKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
