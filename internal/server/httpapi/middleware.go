package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/docvault/docvault/internal/server/auth"
	"github.com/docvault/docvault/internal/server/users"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

const bearerPrefix = "Bearer "

// authenticate extracts the bearer token, verifies it and resolves the token
// subject into the current user record. Missing header, bad signature,
// expiry and unknown or inactive subjects all reject with 401; the body
// never says which check failed.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			respondWithError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)

		subject, err := auth.GetSubjectFromToken(token, s.jwtSecret)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := s.users.GetByUsername(r.Context(), subject)
		if err != nil || !user.IsActive {
			respondWithError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the user resolved by the authenticate middleware.
func CurrentUser(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*users.User)
	return user, ok
}
