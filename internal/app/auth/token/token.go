package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	jwt.RegisteredClaims
}

// Issuer signs and validates the bearer credential returned by login. The
// server keeps no record of issued tokens; expiry is the only revocation.
type Issuer interface {
	Generate(userID int64) (token string, exp time.Time, err error)
	Validate(token string) (SessionClaims, error)
}
