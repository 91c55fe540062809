package middleware

import (
	"net/http"
	"strings"
)

const clientKeyHeader = "X-Client-Key"

// ClientKey extracts the caller-supplied browser key used to scope sessions
// and booking intents. Callers that never send the header fall back to their
// hashed IP so anonymous room selection still round-trips.
func ClientKey() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(clientKeyHeader))
			if key == "" {
				if ip := clientIP(r); ip != "" {
					key = "ip-" + hashValue(ip)
				}
			}

			ctx := WithClientKey(r.Context(), key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
