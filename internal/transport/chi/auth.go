package chi

import (
	"net/http"
	"strings"
)

// Probes stay reachable without credentials.
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware validates Bearer tokens against the configured keys.
// An empty key list disables authentication entirely.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	valid := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			valid[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(valid) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, exempt := exemptPaths[r.URL.Path]; exempt {
				next.ServeHTTP(w, r)
				return
			}

			token, msg := bearerToken(r.Header.Get("Authorization"))
			if msg != "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, msg)
				return
			}
			if _, ok := valid[token]; !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token, or returns a client-facing reason why it
// could not.
func bearerToken(header string) (token, msg string) {
	if header == "" {
		return "", "missing authorization header"
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", "authorization header must use Bearer scheme"
	}
	return token, ""
}
