package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

var codeSpace = big.NewInt(1_000_000)

// GenerateVerificationCode returns a zero-padded six digit code.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func GenerateUnsubscribeToken() string {
	return uuid.NewString()
}
