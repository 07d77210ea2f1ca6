package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/regatta-backend/pkg/ctxutil"
)

// AdminTokenHeader carries the plain admin token.
const AdminTokenHeader = "X-Admin-Token"

// AdminToken guards destructive endpoints. The token in X-Admin-Token is
// checked against a bcrypt hash; on success the context is marked admin.
// An empty hash disables the guarded endpoints entirely.
func AdminToken(hash string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hash == "" {
				http.Error(w, "admin endpoints are disabled", http.StatusForbidden)
				return
			}

			token := r.Header.Get(AdminTokenHeader)
			if token == "" {
				http.Error(w, "missing admin token", http.StatusUnauthorized)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
				http.Error(w, "invalid admin token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxutil.WithAdmin(r.Context())))
		})
	}
}
