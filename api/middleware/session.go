package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/logger"
)

// CartSession reads the anonymous cart session header and issues a fresh uuid
// when the client arrives without one. The id always echoes back on the
// response so the client can persist it.
func CartSession(header string, logg *logger.Logger) func(http.Handler) http.Handler {
	if header == "" {
		header = "X-Cart-Session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(header)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(header, sessionID)

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
