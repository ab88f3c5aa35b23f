package redirect

import (
	"net/url"

	"github.com/goliatone/go-checkout/pkg/failure"
	"github.com/goliatone/go-checkout/pkg/payment"
)

// MethodGet is the only redirect method a browser hand-off supports.
const MethodGet = "GET"

var supportedTypes = map[string]struct{}{
	"PROVIDER":     {},
	"3DS2-HANDLER": {},
}

// Supported reports whether r should be opened in a browser.
func Supported(r *payment.Redirect) bool {
	if r == nil {
		return false
	}
	_, ok := supportedTypes[r.Type]
	return ok
}

// BuildURL appends the redirect parameters to its URL. Existing query
// parameters are kept.
func BuildURL(r payment.Redirect) (string, error) {
	parsed, err := url.Parse(r.URL)
	if err != nil || parsed.Scheme == "" {
		return "", &failure.InternalError{Message: "incorrect redirect url: " + r.URL, Err: err}
	}
	if r.Method != MethodGet {
		return "", failure.Internal("redirect method is not GET: %s", r.Method)
	}
	if len(r.Parameters) == 0 {
		return parsed.String(), nil
	}
	query := parsed.Query()
	for _, p := range r.Parameters {
		query.Add(p.Name, p.Value)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
