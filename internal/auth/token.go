package auth

import (
	"net/http"
	"strings"
)

const accessTokenCookie = "access_token"

// ExtractAccessToken reads the bearer token from the access_token cookie,
// falling back to the Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}

	return ""
}
