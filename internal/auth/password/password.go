package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost matches the work factor used for every stored hash.
const Cost = 10

// Hash returns the bcrypt hash stored for a user password.
func Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty_password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks whether a password matches the encoded bcrypt hash.
func Verify(password, encoded string) bool {
	if password == "" || encoded == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
