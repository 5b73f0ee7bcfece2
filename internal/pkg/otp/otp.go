package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of digits in a generated code.
const Length = 5

// New returns a uniformly-random 5-digit numeric code in [10000, 99999].
// The range excludes leading zeros by construction, so the string form is
// always exactly 5 characters.
func New() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+10000), nil
}
