package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims represents the typed JWT issued to members. The subject
// is the member email.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// Email returns the member email carried in the subject claim.
func (c AccessTokenClaims) Email() string {
	return c.Subject
}
