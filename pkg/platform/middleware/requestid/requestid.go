// Package requestid tags each request with an identifier carried in the
// context and echoed on the response.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"retreat/pkg/requestcontext"
)

// Header is the header read from and written to.
const Header = "X-Request-ID"

const maxLength = 128

// Middleware reuses an incoming X-Request-ID when it looks sane, otherwise
// generates a new one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
