package localization

import (
	"errors"

	"github.com/goliatone/go-checkout/pkg/failure"
)

// Alert is the terminal error presentation for a failed load.
type Alert struct {
	Title   string
	Message string
	// Retry is set when a "Retry" action should re-run the load from scratch.
	Retry   bool
	Actions []string
}

// Present converts err into an alert. User facing and server messages are
// shown verbatim when localized; everything else gets the generic text.
func Present(err error, t Translator) Alert {
	alert := Alert{
		Title:   Text(t, KeyErrorTitle),
		Message: Text(t, KeyErrorText),
	}

	var (
		userErr   *failure.UserFacingError
		serverErr *failure.ServerError
	)
	switch {
	case errors.As(err, &userErr):
		if userErr.Message != "" {
			alert.Message = userErr.Message
		}
	case errors.As(err, &serverErr):
		if msg, ok := Lookup(t, serverErr.LocalizationKey()); ok {
			alert.Message = msg
		}
	}

	if failure.Retryable(err) {
		alert.Retry = true
		alert.Actions = []string{Text(t, KeyRetryLabel), Text(t, KeyCancelLabel)}
		return alert
	}
	alert.Actions = []string{Text(t, KeyOKLabel)}
	return alert
}
