package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the configured admin password once at start-up so
// the plain value is not kept around.  A cost bcrypt would reject (for
// instance an unset BCRYPT_COST) is replaced with bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost { // clamp to a cost bcrypt accepts
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain is the password behind hash, as
// typed at the admin login prompt.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
