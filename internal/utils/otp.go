package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	otpMin = 10000
	otpMax = 99999
)

// GenerateOTP returns a uniformly distributed five-digit code in
// [10000, 99999] read from crypto/rand.
func GenerateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, fmt.Errorf("error generating otp: %w", err)
	}

	return otpMin + int(n.Int64()), nil
}
