package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var errNoExpiry = errors.New("token carries no expiry claim")

// TokenExpiry reads the exp claim of a bearer token without verifying the
// signature. Verification is the backend's job; this only reports when the
// stored token will stop working.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}
