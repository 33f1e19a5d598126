package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
)

type hmacIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewIssuer(secret string, ttl time.Duration, issuer string) Issuer {
	return &hmacIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

func (h *hmacIssuer) Generate(userID int64) (string, time.Time, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.ttl)),
			Issuer:    h.issuer,
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", time.Time{}, apperrors.WrapInternal(err, "sign session token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (h *hmacIssuer) Validate(raw string) (SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, apperrors.ErrInvalidToken
		}
		return h.secret, nil
	})

	if err != nil || !parsed.Valid {
		return SessionClaims{}, apperrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok {
		return SessionClaims{}, apperrors.ErrInvalidToken
	}

	return *claims, nil
}

// UserID parses the numeric account id out of the subject claim.
func (c SessionClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}
	return id, nil
}
