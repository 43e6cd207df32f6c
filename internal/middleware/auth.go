package middleware

import (
	"context"
	"net/http"
	"strings"

	"memgame/internal/httpresponse"
	"memgame/internal/token"
)

type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth validates the session token and injects the user id into
// the request context. The token is read from the x-auth-token header
// or an Authorization: Bearer header, whichever is present.
func RequireAuth(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromRequest(r)
			if raw == "" {
				httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
					httpresponse.ErrorResponse{ErrorDescription: "No token, authorization denied"})
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
					httpresponse.ErrorResponse{ErrorDescription: "Token is not valid"})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts the raw token string without verifying it.
func TokenFromRequest(r *http.Request) string {
	if t := r.Header.Get("x-auth-token"); t != "" {
		return t
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// UserIDFromContext returns the identity attached by RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
