package localization

// Keys with a built-in fallback or referenced by the SDK directly.
const (
	KeyErrorTitle  = "messages.error.default.title"
	KeyErrorText   = "messages.error.default.text"
	KeyCancelLabel = "button.cancel.label"
	KeyRetryLabel  = "button.retry.label"
	KeyOKLabel     = "button.ok.label"
	KeyPayLabel    = "button.pay.label"
	KeyListTitle   = "paymentpage.title"
	KeyNetworkName = "network.label"
)

var builtin = map[string]string{
	KeyErrorTitle:  "Oops!",
	KeyErrorText:   "An error occurred while handling your payment. Please try again.",
	KeyOKLabel:     "OK",
	KeyRetryLabel:  "Retry",
	KeyCancelLabel: "Cancel",
}

// Builtin returns the strings shipped with the SDK for keys the backend may
// not provide.
func Builtin(key string) (string, bool) {
	value, ok := builtin[key]
	return value, ok
}
