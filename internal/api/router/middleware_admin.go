package router

import (
	"net/http"
	"strings"
)

const adminTokenHeader = "X-Admin-Token"
const adminTokenQuery = "admin_token"

// requireAdminToken enforces the shared token on customer admin endpoints.
// When expected is empty, the middleware is a no-op.
func requireAdminToken(expected string) func(http.Handler) http.Handler {
	expected = strings.TrimSpace(expected)
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(adminTokenHeader))
			if token == "" {
				token = strings.TrimSpace(r.URL.Query().Get(adminTokenQuery))
			}
			if token == "" || token != expected {
				http.Error(w, "invalid admin token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
