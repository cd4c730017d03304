// Package isbn validates ISBN-13 identifiers.
package isbn

import (
	"errors"
	"strings"
)

const length13 = 13

var (
	ErrLength   = errors.New("isbn must have 13 digits")
	ErrNonDigit = errors.New("isbn contains a non-digit character")
	ErrChecksum = errors.New("isbn check digit mismatch")
)

// Normalize strips hyphens and spaces.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// Check reports why s is not a valid ISBN-13, or nil if it is.
func Check(s string) error {
	n := Normalize(s)
	if len(n) != length13 {
		return ErrLength
	}

	sum := 0
	for i := 0; i < len(n); i++ {
		c := n[i]
		if c < '0' || c > '9' {
			return ErrNonDigit
		}
		d := int(c - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	if sum%10 != 0 {
		return ErrChecksum
	}
	return nil
}

// IsValid13 reports whether s is a well-formed ISBN-13 once separators are removed.
func IsValid13(s string) bool {
	return Check(s) == nil
}
