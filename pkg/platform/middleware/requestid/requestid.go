// Package requestid tags every request with an identifier for log correlation.
package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"dlscan/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// validID bounds what a client may supply so it is safe to log.
var validID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Middleware reuses a well-formed incoming X-Request-ID or generates a UUID,
// echoes it on the response and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !validID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
