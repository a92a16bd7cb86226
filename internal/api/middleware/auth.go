package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
)

const (
	// AdminTokenHeader заголовок с административным токеном
	AdminTokenHeader = "X-Admin-Token"

	msgMissingToken = "требуется заголовок X-Admin-Token"
	msgInvalidToken = "недействительный административный токен"
)

// AdminAuth middleware проверяет административный токен в заголовке X-Admin-Token
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminTokenHeader)
			if provided == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
