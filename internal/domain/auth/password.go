package auth

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordBytes  = 72
	passwordSymbols   = "@$!%*?&"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword requires 8+ characters with a lowercase letter, an
// uppercase letter, a digit and one of @$!%*?&. bcrypt caps input at 72 bytes.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength || len(password) > maxPasswordBytes {
		return ErrWeakPassword
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}

// TemporaryPassword returns a random password that satisfies ValidatePassword.
func TemporaryPassword() (string, error) {
	const (
		lowers = "abcdefghijkmnopqrstuvwxyz"
		uppers = "ABCDEFGHJKLMNPQRSTUVWXYZ"
		digits = "23456789"
		length = 14
	)
	all := lowers + uppers + digits + passwordSymbols
	sets := []string{lowers, uppers, digits, passwordSymbols}

	out := make([]byte, 0, length)
	for _, set := range sets {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}
	return string(out), nil
}

func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
