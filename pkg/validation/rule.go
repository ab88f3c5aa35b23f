package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-checkout/pkg/failure"
)

// Mode selects how strictly a value is checked.
type Mode int

const (
	// PreCheck runs on blur and accepts empty values.
	PreCheck Mode = iota
	// FullCheck runs on submit and reports empty required values.
	FullCheck
)

func (m Mode) String() string {
	if m == FullCheck {
		return "fullCheck"
	}
	return "preCheck"
}

// Rule constrains a single field of a network.
type Rule struct {
	NetworkCode string
	Field       string
	MinLength   int
	MaxLength   int
	Pattern     string
	Required    bool
	Luhn        bool

	re *regexp.Regexp
}

// NewRule compiles pattern into a standalone rule.
func NewRule(networkCode, field, pattern string) (*Rule, error) {
	rule := &Rule{NetworkCode: networkCode, Field: field, Pattern: pattern}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		rule.re = re
	}
	return rule, nil
}

// Check validates value against rule. A nil rule accepts every value.
func Check(value string, rule *Rule, mode Mode) error {
	if rule == nil {
		return nil
	}
	if value == "" {
		if mode == FullCheck && rule.Required {
			return &failure.ValidationError{Field: rule.Field, Kind: failure.MissingValue}
		}
		return nil
	}
	if rule.re != nil && !rule.re.MatchString(value) {
		return &failure.ValidationError{Field: rule.Field, Kind: failure.InvalidValue}
	}
	length := utf8.RuneCountInString(value)
	if (rule.MinLength > 0 && length < rule.MinLength) || (rule.MaxLength > 0 && length > rule.MaxLength) {
		return &failure.ValidationError{Field: rule.Field, Kind: failure.IncorrectLength}
	}
	if rule.Luhn && !LuhnValid(value) {
		return &failure.ValidationError{Field: rule.Field, Kind: failure.InvalidValue}
	}
	return nil
}

// LuhnValid reports whether digits passes the mod 10 checksum. Non digit
// input is invalid.
func LuhnValid(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
