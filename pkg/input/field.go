package input

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-checkout/pkg/failure"
	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/validation"
)

// SuffixResolver provides the generic/specific segment of the verification
// code placeholder key.
type SuffixResolver interface {
	SuffixKey() string
}

// Field is an input field view model. Value and error text are written by a
// single owner (the UI event handler).
type Field struct {
	name        string
	variant     variant
	elementType payment.InputElementType
	options     []payment.SelectOption
	labelKey    string
	translator  localization.Translator
	rule        *validation.Rule
	logger      *slog.Logger

	value     string
	errorText string

	on      bool
	hidden  bool
	enabled bool

	suffixer SuffixResolver
}

func newField(name string, v variant, t localization.Translator, rule *validation.Rule, logger *slog.Logger) *Field {
	return &Field{
		name:       name,
		variant:    v,
		translator: t,
		rule:       rule,
		logger:     logger,
		enabled:    true,
	}
}

// NewHidden builds a non interactive field carrying a preset value.
func NewHidden(name, value string) *Field {
	f := newField(name, hiddenVariant, nil, nil, nil)
	f.value = value
	f.hidden = true
	return f
}

// Name returns the element name submitted to the backend.
func (f *Field) Name() string { return f.name }

// Kind returns the field variant.
func (f *Field) Kind() Kind { return f.variant.kind }

// Type returns the raw element type, empty for synthetic fields.
func (f *Field) Type() payment.InputElementType { return f.elementType }

// Options returns the select options of the raw element.
func (f *Field) Options() []payment.SelectOption {
	return append([]payment.SelectOption(nil), f.options...)
}

// Rule returns the validation rule, nil when the field is unconstrained.
func (f *Field) Rule() *validation.Rule { return f.rule }

// Value returns the current value.
func (f *Field) Value() string { return f.value }

// SetValue replaces the current value.
func (f *Field) SetValue(value string) { f.value = value }

// Keyboard returns the keyboard hint.
func (f *Field) Keyboard() Keyboard { return f.variant.keyboard }

// Allows reports whether r may be typed into the field.
func (f *Field) Allows(r rune) bool {
	if f.variant.allow == nil {
		return true
	}
	return f.variant.allow(r)
}

// Filter drops the characters the field does not accept.
func (f *Field) Filter(s string) string {
	if f.variant.allow == nil {
		return s
	}
	return strings.Map(func(r rune) rune {
		if f.variant.allow(r) {
			return r
		}
		return -1
	}, s)
}

// Label returns the localized label.
func (f *Field) Label() string {
	if f.variant.kind == KindCheckbox {
		return localization.Text(f.translator, f.labelKey)
	}
	key := "account." + f.name + ".label"
	if value, ok := localization.Lookup(f.translator, key); ok {
		return value
	}
	if f.labelKey != "" {
		return localization.Text(f.translator, f.labelKey)
	}
	return key
}

// Placeholder returns the localized placeholder. Verification code fields
// resolve the generic or specific variant through the bound SuffixResolver.
func (f *Field) Placeholder() string {
	prefix := "account." + f.name + "."
	if f.variant.kind != KindVerificationCode {
		return localization.Text(f.translator, prefix+"placeholder")
	}
	if f.suffixer == nil {
		err := failure.Internal("verification code field %q has no suffix resolver bound", f.name)
		if f.logger != nil {
			f.logger.Error("placeholder suffix missing", "field", f.name, "error", err)
		}
		return localization.Text(f.translator, prefix+"placeholder")
	}
	return localization.Text(f.translator, prefix+f.suffixer.SuffixKey()+".placeholder")
}

// Localize returns the message for a validation failure of this field.
func (f *Field) Localize(kind failure.ValidationKind) string {
	suffix := f.variant.errorKey
	if suffix == "" {
		suffix = screamingSnake(f.name)
	}
	switch kind {
	case failure.MissingValue:
		return localization.Text(f.translator, "error.MISSING_"+suffix)
	default:
		return localization.Text(f.translator, "error.INVALID_"+suffix)
	}
}

// Validate checks the current value and updates the error text. Hidden and
// checkbox fields are never invalid.
func (f *Field) Validate(mode validation.Mode) error {
	if f.variant.kind == KindHidden || f.variant.kind == KindCheckbox {
		return nil
	}
	err := validation.Check(f.submitValue(), f.rule, mode)
	if err == nil {
		f.errorText = ""
		return nil
	}
	if validationErr, ok := err.(*failure.ValidationError); ok {
		validationErr.Field = f.name
		f.errorText = f.Localize(validationErr.Kind)
	}
	return err
}

// ErrorText returns the current validation message.
func (f *Field) ErrorText() string { return f.errorText }

// ClearError resets the validation message, typically on focus.
func (f *Field) ClearError() { f.errorText = "" }

// IsOn reports the checkbox state.
func (f *Field) IsOn() bool { return f.on }

// SetOn changes the checkbox state. Disabled checkboxes ignore the call.
func (f *Field) SetOn(on bool) {
	if !f.enabled {
		return
	}
	f.on = on
}

// IsHidden reports whether the field is not displayed.
func (f *Field) IsHidden() bool { return f.hidden }

// IsEnabled reports whether the user may change the field.
func (f *Field) IsEnabled() bool { return f.enabled }

// submitValue is the value as sent to the backend.
func (f *Field) submitValue() string {
	switch f.variant.kind {
	case KindAccountNumber, KindIBAN:
		return strings.ReplaceAll(f.value, " ", "")
	default:
		return f.value
	}
}

// Button is the submit button view model.
type Button struct {
	Label string
}
