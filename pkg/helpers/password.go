package helpers

import "golang.org/x/crypto/bcrypt"

// bcrypt cost 10 keeps hashing in the tens-of-milliseconds range.
const passwordHashCost = 10

// HashPassword produces a salted bcrypt digest of the plain text password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored bcrypt digest.
// bcrypt's comparison is constant-time with respect to the digest contents.
func CheckPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
