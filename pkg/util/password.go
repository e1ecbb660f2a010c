package util

import (
	"golang.org/x/crypto/bcrypt"
)

// Account passwords are hashed with bcrypt at a fixed cost of 12. The cost
// is baked into each stored hash, so raising it later only affects
// passwords set afterwards.
const bcryptCost = 12

// HashPassword returns the bcrypt hash of a plain-text password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the plain-text password matches the stored
// hash. Malformed hashes simply fail verification.
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
