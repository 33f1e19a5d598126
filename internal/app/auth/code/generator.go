package code

import (
	"crypto/rand"
	"math/big"

	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
)

const defaultLength = 6

// Generator produces the short secrets mailed to users. Pluggable so tests
// can pin the value and deployments can widen the alphabet.
type Generator interface {
	Generate() (string, error)
}

type numericGenerator struct {
	length int
}

func NewNumericGenerator() Generator {
	return &numericGenerator{length: defaultLength}
}

func (g *numericGenerator) Generate() (string, error) {
	digits := make([]byte, g.length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", apperrors.WrapInternal(err, "generate code")
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
