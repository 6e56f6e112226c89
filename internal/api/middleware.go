package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const authRealm = "tourguide"

// BearerAuth returns middleware that validates the Authorization: Bearer <token> header.
// Rejections carry an RFC 6750 challenge so tool clients can tell a missing token from a
// wrong one. The comparison is constant time.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			provided, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || provided == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="`+authRealm+`"`)
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="`+authRealm+`", error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
