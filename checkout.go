package checkout

import (
	"context"

	internaltransport "github.com/goliatone/go-checkout/internal/transport"
	"github.com/goliatone/go-checkout/pkg/input"
	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/session"
	"github.com/goliatone/go-checkout/pkg/smartswitch"
	"github.com/goliatone/go-checkout/pkg/transport"
)

// Session aliases session.Session so callers can stay on the root package.
type Session = session.Session

// Loader aliases session.Loader.
type Loader = session.Loader

// Form is the input model of one network or account.
type Form = input.Network

// Alert is the presentation of a failed load.
type Alert = localization.Alert

// NewLoader exposes the session loader constructor from the top-level module.
func NewLoader(options ...session.Option) *session.Loader {
	return session.NewLoader(options...)
}

// NewTransport builds the HTTP transport used by the loader.
func NewTransport(options ...transport.Option) transport.Transport {
	return internaltransport.New(transport.NewOptions(options...))
}

// LoadSession downloads, filters and localizes the list result at sessionURL.
// It is the simplest entry point for callers that just want a ready session.
func LoadSession(ctx context.Context, sessionURL string, options ...session.Option) (*Session, error) {
	return session.NewLoader(options...).Load(ctx, sessionURL)
}

// Forms builds the input models of every network in s, in session order.
func Forms(s *Session, options ...input.Option) []*Form {
	if s == nil {
		return nil
	}
	return input.NewTransformer(options...).TransformAll(s.Networks)
}

// NewSelector builds the smart switch over forms and binds it as the
// verification code suffix resolver of every form.
func NewSelector(forms []*Form) (*smartswitch.Selector, func(), error) {
	selector, err := smartswitch.New(forms)
	if err != nil {
		return nil, nil, err
	}
	detach := input.BindSuffixer(selector, forms...)
	return selector, detach, nil
}

// Present converts a load error into an alert, localized with the shared
// bundle of s when one is available.
func Present(err error, s *Session) Alert {
	var t localization.Translator
	if s != nil && s.Shared != nil {
		t = s.Shared
	}
	return localization.Present(err, t)
}
