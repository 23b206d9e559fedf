package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP generates a zero-padded numeric one-time passcode of the
// given length. Uses crypto/rand, the codes go out over SMS.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("otp length must be positive, got %d", length)
	}

	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
