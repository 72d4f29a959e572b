package middleware

import (
	"context"
	"net/http"
	"strings"

	"carlot/internal/auth"
	"carlot/internal/logging"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// RequireRole rejects requests without a valid bearer token carrying one of
// roles. Rejection happens before the wrapped handler runs.
func RequireRole(verifier TokenVerifier, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := parseBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if !hasRole(claims.Role, roles) {
				logging.WithContext(r.Context()).Warn().
					Str("role", claims.Role).
					Str("path", r.URL.Path).
					Msg("access denied")
				writeError(w, http.StatusUnauthorized, "access denied")
				return
			}

			ctx := auth.WithClaims(r.Context(), claims)
			if id, err := claims.AccountID(); err == nil {
				ctx = context.WithValue(ctx, logging.AccountIDKey, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hasRole(role string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
