package input

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-checkout/pkg/failure"
)

// ParseExpiryDate splits "MM/YY" (or "MMYY") into a two digit month and a four
// digit year.
func ParseExpiryDate(value string) (month, year string, err error) {
	digits := strings.ReplaceAll(strings.TrimSpace(value), "/", "")
	invalid := &failure.ValidationError{Field: ElementExpiryDate, Kind: failure.InvalidValue}
	if digits == "" {
		return "", "", &failure.ValidationError{Field: ElementExpiryDate, Kind: failure.MissingValue}
	}
	if len(digits) != 4 {
		return "", "", &failure.ValidationError{Field: ElementExpiryDate, Kind: failure.IncorrectLength}
	}
	if strings.Count(value, "/") > 1 {
		return "", "", invalid
	}
	m, err := strconv.Atoi(digits[:2])
	if err != nil || m < 1 || m > 12 {
		return "", "", invalid
	}
	if _, err := strconv.Atoi(digits[2:]); err != nil {
		return "", "", invalid
	}
	return digits[:2], "20" + digits[2:], nil
}
