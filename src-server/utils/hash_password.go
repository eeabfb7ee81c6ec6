package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
)

// HashPassword derives a deterministic credential hash signed with the app
// secret. Comparison must go through VerifyPassword.
func HashPassword(password string, secret string) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func VerifyPassword(password string, hash string, secret string) bool {
	expected := HashPassword(password, secret)
	return hmac.Equal([]byte(expected), []byte(hash))
}
