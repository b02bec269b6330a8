package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"strings"
)

const digits = "0123456789"

var ten = big.NewInt(int64(len(digits)))

// RandomDigits returns n independently drawn decimal digits.
// Every one of the 10^n strings is equally likely, leading zeros included.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("digit count must be positive")
	}

	var b strings.Builder
	b.Grow(n)
	for range n {
		i, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(digits[i.Int64()])
	}
	return b.String(), nil
}

// EqualString compares two strings in constant time with respect to their content.
func EqualString(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// MaskPhone hides all but the last four characters of a phone number.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	prefix := ""
	rest := phone
	if strings.HasPrefix(phone, "+") {
		prefix = "+"
		rest = phone[1:]
	}
	if len(rest) <= 4 {
		return phone
	}
	return prefix + strings.Repeat("*", len(rest)-4) + rest[len(rest)-4:]
}
