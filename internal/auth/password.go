package auth

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is the weakest password accepted at signup and on change.
const MinPasswordLength = 6

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// StrongEnough reports whether the password meets the minimum length.
func StrongEnough(password string) bool {
	return len(password) >= MinPasswordLength
}
