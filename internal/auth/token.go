package auth

import (
	"net/http"
	"strings"
)

const TokenHeader = "X-FIT-TOKEN"

// TokenFromRequest reads the session token from "Authorization: Bearer <token>",
// falling back to the X-FIT-TOKEN header.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		scheme, token, found := strings.Cut(authz, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}
