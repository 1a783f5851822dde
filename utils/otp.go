package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// OTPLength is the length of gate-access codes issued per booking.
const OTPLength = 8

// GenerateOTP generates a secure random access code of the given length.
// It returns a base32 encoded string (without padding) truncated to the
// desired length, so an 8-character code carries 40 bits of entropy.
func GenerateOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8 // Calculate the required number of bytes.
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}
