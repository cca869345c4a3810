package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the salted bcrypt hash of plain at the given cost.
// It is used by fixtures and administration tooling; the dashboard itself
// never writes users.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares plain against a stored bcrypt hash in constant
// time.  A malformed hash never matches.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
