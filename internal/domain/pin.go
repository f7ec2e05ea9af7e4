package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// PinLength is the fixed width of a delivery PIN.
const PinLength = 4

var pinSpace = big.NewInt(10000)

// GeneratePin returns a fresh zero-padded 4-digit delivery PIN.
func GeneratePin() (string, error) {
	n, err := rand.Int(rand.Reader, pinSpace)
	if err != nil {
		return "", fmt.Errorf("generate pin: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// PinEquals compares two PINs in constant time.
func PinEquals(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
