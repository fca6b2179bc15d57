package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomSuffix returns n characters drawn from the URL-safe base64 alphabet.
// Used to disambiguate usernames and blog slugs.
func RandomSuffix(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
