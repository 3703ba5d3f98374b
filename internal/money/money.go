// Package money converts between user-facing decimal amount strings
// and the int64 cents representation stored in the database. All
// arithmetic in the application happens on cents; floats only appear
// at the formatting edge.
package money

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "grosz/internal/errors"
)

// maxSafeCents guards against overflow when multiplying the integer
// part by 100.
const maxSafeCents = (1<<63 - 1) / 100

// ParseCents converts a decimal string to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// at most two fractional digits. Negative values and a leading sign are
// rejected; zero is allowed so that budget limits can be cleared.
//
//	ParseCents("150.50") -> 15050, nil
//	ParseCents("150,5")  -> 15050, nil
//	ParseCents("0")      -> 0, nil
//	ParseCents("-3")     -> 0, ErrInvalidAmount
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.ErrInvalidAmount
	}
	// Normalize decimal comma to dot.
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, apperrors.ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, apperrors.ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, apperrors.ErrInvalidAmount
	}
	// ASCII digits only: the fraction is decoded byte-wise below, and
	// unicode digit classes would let other scripts slip through.
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, apperrors.ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || iv > maxSafeCents {
		return 0, apperrors.ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
		}
	}

	return iv*100 + fracCents, nil
}

// ParsePositiveCents parses a decimal string and additionally rejects
// zero. Expense amounts must be strictly positive.
func ParsePositiveCents(s string) (int64, error) {
	cents, err := ParseCents(s)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}
	return cents, nil
}

// FormatCents renders cents as a decimal string with exactly two
// fractional digits, e.g. 15050 -> "150.50". Negative values keep
// their sign; they appear when a budget is overspent.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
