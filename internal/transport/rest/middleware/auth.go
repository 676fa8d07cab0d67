package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"quizboard/internal/model"
	"quizboard/internal/service"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware decodes tokens at the request boundary
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Attach verifies a token carried in the Authorization header or the
// query string and puts its claims on the request context. A missing,
// malformed or expired token never rejects the request: it just
// proceeds unauthenticated.
func (m *AuthMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authSvc.VerifyToken(token)
		if err != nil {
			log.Printf("ignoring invalid token: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims extracts the authenticated identity from the context, nil
// when the request is unauthenticated
func GetClaims(ctx context.Context) *model.UserClaims {
	if v := ctx.Value(claimsKey); v != nil {
		return v.(*model.UserClaims)
	}
	return nil
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(auth)
	}
	return r.URL.Query().Get("token")
}
