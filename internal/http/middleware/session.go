package middleware

import (
	"context"
	"net/http"
	"strings"

	"carlot/internal/logging"
	"carlot/internal/session"
)

// SessionStorageHeader lets a client declare it has no persistent storage,
// as a server-side renderer does. Such requests get the empty session id.
const SessionStorageHeader = "X-Session-Storage"

// Session resolves the anonymous session id from the session cookie, minting
// and setting one when absent, and stores it on the request context. Only an
// id the client sent back is recorded as stored.
func Session(provider *session.Provider, opts session.CookieOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var storage session.Storage
			if !strings.EqualFold(r.Header.Get(SessionStorageHeader), "none") {
				storage = session.NewCookieStorage(w, r, opts)
			}

			ctx := r.Context()
			id, returning := provider.Lookup(storage)
			if returning {
				ctx = session.WithStoredID(ctx, id)
			} else {
				id = provider.GetOrCreate(storage)
			}
			ctx = session.WithID(ctx, id)
			if id != "" {
				ctx = context.WithValue(ctx, logging.SessionIDKey, id)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
