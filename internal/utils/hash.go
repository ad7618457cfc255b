package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// signatureSeparator separates a value from its HMAC in a signed string.
const signatureSeparator = "."

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// SignValue appends an HMAC-SHA256 signature to value. It is used for
// cookies whose content must not be forged by the client, such as the
// OAuth state and flash messages.
//
//	signed := utils.SignValue("payload", key) // "payload.<hex hmac>"
func SignValue(value, hashKey string) string {
	return value + signatureSeparator + HashString(value, hashKey)
}

// VerifySignedValue checks a string produced by SignValue and returns the
// original value. ok is false when the signature is missing or wrong.
func VerifySignedValue(signed, hashKey string) (string, bool) {
	idx := strings.LastIndex(signed, signatureSeparator)
	if idx < 0 {
		return "", false
	}

	value, sig := signed[:idx], signed[idx+1:]
	got, err := hex.DecodeString(sig)
	if err != nil {
		return "", false
	}

	if !hmac.Equal(got, hashString([]byte(value), hashKey)) {
		return "", false
	}

	return value, true
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
