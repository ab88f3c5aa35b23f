package input

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-checkout/pkg/payment"
)

// Kind identifies the field variant.
type Kind string

const (
	KindAccountNumber    Kind = "accountNumber"
	KindHolderName       Kind = "holderName"
	KindVerificationCode Kind = "verificationCode"
	KindExpiryMonth      Kind = "expiryMonth"
	KindExpiryYear       Kind = "expiryYear"
	KindExpiryDate       Kind = "expiryDate"
	KindBankCode         Kind = "bankCode"
	KindBIC              Kind = "bic"
	KindIBAN             Kind = "iban"
	KindGeneric          Kind = "generic"
	KindHidden           Kind = "hidden"
	KindCheckbox         Kind = "checkbox"
)

// Keyboard hints the on-screen keyboard a client should show.
type Keyboard string

const (
	KeyboardDefault Keyboard = "default"
	KeyboardNumeric Keyboard = "numeric"
	KeyboardName    Keyboard = "name"
	KeyboardASCII   Keyboard = "ascii"
)

// Element names with dedicated handling.
const (
	ElementNumber           = "number"
	ElementIBAN             = "iban"
	ElementHolderName       = "holderName"
	ElementVerificationCode = "verificationCode"
	ElementBankCode         = "bankCode"
	ElementBIC              = "bic"
	ElementExpiryMonth      = "expiryMonth"
	ElementExpiryYear       = "expiryYear"
	ElementExpiryDate       = "expiryDate"
)

// variant holds the per kind behaviour shared by every field of that kind.
type variant struct {
	kind     Kind
	keyboard Keyboard
	allow    func(r rune) bool
	// errorKey is the suffix of the error.INVALID_* and error.MISSING_*
	// translation keys. Empty derives it from the field name.
	errorKey string
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlphanumeric(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isExpiryRune(r rune) bool { return isDigit(r) || r == '/' }

// kinds maps raw element names to their variant. Names without an entry are
// Generic.
var kinds = map[string]variant{
	ElementNumber: {
		kind:     KindAccountNumber,
		keyboard: KeyboardNumeric,
		allow:    func(r rune) bool { return isDigit(r) || r == ' ' },
		errorKey: "ACCOUNT_NUMBER",
	},
	ElementIBAN: {
		kind:     KindIBAN,
		keyboard: KeyboardASCII,
		allow:    func(r rune) bool { return isAlphanumeric(r) || r == ' ' },
		errorKey: "IBAN",
	},
	ElementHolderName: {
		kind:     KindHolderName,
		keyboard: KeyboardName,
		errorKey: "HOLDER_NAME",
	},
	ElementVerificationCode: {
		kind:     KindVerificationCode,
		keyboard: KeyboardNumeric,
		allow:    isDigit,
		errorKey: "VERIFICATION_CODE",
	},
	ElementBankCode: {
		kind:     KindBankCode,
		keyboard: KeyboardNumeric,
		allow:    isDigit,
		errorKey: "BANK_CODE",
	},
	ElementBIC: {
		kind:     KindBIC,
		keyboard: KeyboardASCII,
		allow:    isAlphanumeric,
		errorKey: "BIC",
	},
	ElementExpiryMonth: {
		kind:     KindExpiryMonth,
		keyboard: KeyboardNumeric,
		allow:    isDigit,
		errorKey: "EXPIRY_MONTH",
	},
	ElementExpiryYear: {
		kind:     KindExpiryYear,
		keyboard: KeyboardNumeric,
		allow:    isDigit,
		errorKey: "EXPIRY_YEAR",
	},
}

var (
	expiryDateVariant = variant{
		kind:     KindExpiryDate,
		keyboard: KeyboardNumeric,
		allow:    isExpiryRune,
		errorKey: "EXPIRY_DATE",
	}
	hiddenVariant   = variant{kind: KindHidden, keyboard: KeyboardDefault}
	checkboxVariant = variant{kind: KindCheckbox, keyboard: KeyboardDefault}
)

// variantFor resolves the variant for a raw element.
func variantFor(element payment.InputElement) variant {
	if v, ok := kinds[element.Name]; ok {
		return v
	}
	generic := variant{kind: KindGeneric, keyboard: KeyboardDefault}
	switch element.Type {
	case payment.InputTypeNumeric, payment.InputTypeInteger:
		generic.keyboard = KeyboardNumeric
		generic.allow = isDigit
	}
	return generic
}

// KindOf reports the variant an element name maps to.
func KindOf(name string) Kind {
	if v, ok := kinds[name]; ok {
		return v.kind
	}
	return KindGeneric
}

// screamingSnake converts camelCase element names to the upper snake case used
// in error keys: "customerNote" becomes "CUSTOMER_NOTE".
func screamingSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
