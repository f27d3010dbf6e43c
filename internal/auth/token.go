package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiry claim from a bearer token without
// verifying it. The token is an opaque server credential and the client never
// validates signatures, but when it happens to be a JWT the expiry is worth
// showing in status output.
//
// The second return is false when the token is not a parsable JWT or carries
// no expiry claim.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
