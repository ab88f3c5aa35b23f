package input

import (
	"errors"
	"strconv"

	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/rules"
	"github.com/goliatone/go-checkout/pkg/validation"
)

// Network is the form model of one payment network or registered account.
type Network struct {
	Code         string
	Label        string
	Method       string
	OperationURL string
	Translator   localization.Translator

	Fields     []*Field
	Checkboxes []*Field
	Submit     Button

	// SwitchRule is nil when the network never auto-switches.
	SwitchRule *rules.SwitchRule

	logo LogoSource
}

// LogoSource supplies logo bytes that may be downloaded after the form is
// built.
type LogoSource interface {
	Logo() []byte
}

// Logo returns the current logo bytes of the owning network or account.
func (n *Network) Logo() []byte {
	if n.logo == nil {
		return nil
	}
	return n.logo.Logo()
}

// Equal compares networks by code and label.
func (n *Network) Equal(other *Network) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Code == other.Code && n.Label == other.Label
}

// Field returns the field or checkbox named name.
func (n *Network) Field(name string) (*Field, bool) {
	for _, f := range n.Fields {
		if f.name == name {
			return f, true
		}
	}
	for _, f := range n.Checkboxes {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// VerificationCodeFields returns the fields whose placeholder depends on the
// smart switch state.
func (n *Network) VerificationCodeFields() []*Field {
	var out []*Field
	for _, f := range n.Fields {
		if f.variant.kind == KindVerificationCode {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks every field and joins the failures.
func (n *Network) Validate(mode validation.Mode) error {
	var errs []error
	for _, f := range n.Fields {
		if err := f.Validate(mode); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Values collects the submit payload. Checkboxes are reported as "true" or
// "false" and the merged expiry date is split into expiryMonth and expiryYear.
func (n *Network) Values() (map[string]string, error) {
	out := make(map[string]string, len(n.Fields)+len(n.Checkboxes))
	for _, f := range n.Fields {
		if f.variant.kind == KindExpiryDate {
			month, year, err := ParseExpiryDate(f.value)
			if err != nil {
				return nil, err
			}
			out[ElementExpiryMonth] = month
			out[ElementExpiryYear] = year
			continue
		}
		if value := f.submitValue(); value != "" {
			out[f.name] = value
		}
	}
	for _, f := range n.Checkboxes {
		out[f.name] = strconv.FormatBool(f.on)
	}
	return out, nil
}

// BindSuffixer attaches r to every verification code field of networks. The
// returned function detaches it again; fields rebound in the meantime keep
// their newer resolver.
func BindSuffixer(r SuffixResolver, networks ...*Network) (detach func()) {
	var bound []*Field
	for _, n := range networks {
		if n == nil {
			continue
		}
		for _, f := range n.VerificationCodeFields() {
			f.suffixer = r
			bound = append(bound, f)
		}
	}
	return func() {
		for _, f := range bound {
			if f.suffixer == r {
				f.suffixer = nil
			}
		}
	}
}
