package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidAddress is returned for input that cannot be sent to the provider.
var ErrInvalidAddress = errors.New("service: invalid address")

// SanitizeAddress folds compatibility characters, replaces control characters
// with spaces and collapses whitespace. It rejects empty input, input without
// any letter or digit, and input longer than maxLength runes (when maxLength > 0).
func SanitizeAddress(raw string, maxLength int) (string, error) {
	s := norm.NFKC.String(raw)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")

	if s == "" {
		return "", fmt.Errorf("%w: address is empty", ErrInvalidAddress)
	}
	if maxLength > 0 && utf8.RuneCountInString(s) > maxLength {
		return "", fmt.Errorf("%w: address exceeds %d characters", ErrInvalidAddress, maxLength)
	}
	if !strings.ContainsFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) {
		return "", fmt.Errorf("%w: address has no letters or digits", ErrInvalidAddress)
	}

	return s, nil
}
