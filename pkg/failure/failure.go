package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error by the way callers are expected to react to it.
type Kind string

const (
	KindUnknown       Kind = ""
	KindTransport     Kind = "transport"
	KindServer        Kind = "server"
	KindUserFacing    Kind = "userFacing"
	KindConfiguration Kind = "configuration"
	KindInternal      Kind = "internal"
	KindValidation    Kind = "validation"
)

// TransportError reports an I/O failure while talking to the payment backend.
// It is surfaced as-is and is the only kind callers may retry.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("transport: ")
	if e.Method != "" {
		b.WriteString(e.Method)
		b.WriteByte(' ')
	}
	b.WriteString(e.URL)
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError carries the error envelope returned by the backend.
type ServerError struct {
	ResultInfo        string
	InteractionCode   string
	InteractionReason string
	StatusCode        int
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("server: %s.%s", e.InteractionCode, e.InteractionReason)
	if e.ResultInfo != "" {
		msg += ": " + e.ResultInfo
	}
	return msg
}

// LocalizationKey returns the translation key describing the interaction.
func (e *ServerError) LocalizationKey() string {
	return e.InteractionCode + "." + e.InteractionReason
}

// UserFacingError holds a message that is already localized and can be shown
// to the end user verbatim.
type UserFacingError struct {
	Message string
	Err     error
}

func (e *UserFacingError) Error() string { return e.Message }

func (e *UserFacingError) Unwrap() error { return e.Err }

// ConfigurationError reports a malformed server response, e.g. a missing
// required link.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return "configuration: " + e.Message + ": " + e.Err.Error()
	}
	return "configuration: " + e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InternalError reports a violated programmer invariant. Its text is never
// shown to end users.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return "internal: " + e.Message + ": " + e.Err.Error()
	}
	return "internal: " + e.Message
}

func (e *InternalError) Unwrap() error { return e.Err }

// ValidationKind enumerates field level validation failures.
type ValidationKind string

const (
	MissingValue    ValidationKind = "missingValue"
	InvalidValue    ValidationKind = "invalidValue"
	IncorrectLength ValidationKind = "incorrectLength"
)

// ValidationError is a non-fatal, field level failure rendered inline.
type ValidationError struct {
	Field string
	Kind  ValidationKind
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: field %q: %s", e.Field, e.Kind)
}

// Configuration builds a ConfigurationError with a formatted message.
func Configuration(format string, args ...any) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// Internal builds an InternalError with a formatted message.
func Internal(format string, args ...any) error {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

// KindOf walks the error chain and reports the first recognised kind.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var (
		transportErr *TransportError
		serverErr    *ServerError
		userErr      *UserFacingError
		configErr    *ConfigurationError
		internalErr  *InternalError
		validErr     *ValidationError
	)
	switch {
	case errors.As(err, &userErr):
		return KindUserFacing
	case errors.As(err, &serverErr):
		return KindServer
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &configErr):
		return KindConfiguration
	case errors.As(err, &validErr):
		return KindValidation
	case errors.As(err, &internalErr):
		return KindInternal
	default:
		return KindUnknown
	}
}

// Retryable reports whether re-running the failed operation from scratch may
// succeed.
func Retryable(err error) bool {
	return KindOf(err) == KindTransport
}
