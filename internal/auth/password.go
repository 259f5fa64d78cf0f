package auth

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidInput = errors.New("invalid input")

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[\p{L}0-9_]{3,20}$`)
	passwordRegex = regexp.MustCompile(`^.{6,72}$`) // bcrypt caps input at 72 bytes
)

// ValidateCredentials checks registration input before any hashing or
// store access happens.
func ValidateCredentials(username, email, password string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-20 letters, numbers or underscores", ErrInvalidInput)
	}
	if !emailRegex.MatchString(email) || len(email) > 254 {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if !passwordRegex.MatchString(password) {
		return fmt.Errorf("%w: password must be 6-72 characters", ErrInvalidInput)
	}
	return nil
}

// HashPassword produces a salted bcrypt digest. The salt and cost are
// embedded in the returned string, so verification is self-contained.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
