package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored admin passwords
const BcryptCost = 12

// HashPassword hashes a password with BcryptCost
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, BcryptCost)
}

// HashPasswordWithCost hashes a password with an explicit cost.
// Tests use bcrypt.MinCost to stay fast.
func HashPasswordWithCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the bcrypt hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
