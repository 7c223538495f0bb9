package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// RandString returns n random bytes encoded URL-safe, so the result can ride
// in a cookie value unescaped.
func RandString(n int) (string, error) {
	b, err := RandBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ConstantTimeEquals compares secrets without leaking a timing signal.
func ConstantTimeEquals(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
