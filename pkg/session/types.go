package session

import (
	"sync"

	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/payment"
)

// Session is the outcome of a successful load. It is immutable once
// assembled, apart from the lazily loaded logos of its networks.
type Session struct {
	OperationType string
	Networks      []*Network
	Accounts      []*Account
	Links         map[string]string
	// Shared is the session wide localization snapshot.
	Shared *localization.Bundle
}

// PreselectedNetwork returns the first network the backend flagged as
// selected.
func (s *Session) PreselectedNetwork() (*Network, bool) {
	if s == nil {
		return nil, false
	}
	for _, network := range s.Networks {
		if network.Raw.Selected {
			return network, true
		}
	}
	return nil, false
}

// Network looks a network up by code.
func (s *Session) Network(code string) (*Network, bool) {
	if s == nil {
		return nil, false
	}
	for _, network := range s.Networks {
		if network.Raw.Code == code {
			return network, true
		}
	}
	return nil, false
}

// Codes returns the network codes in session order.
func (s *Session) Codes() []string {
	if s == nil {
		return nil
	}
	codes := make([]string, 0, len(s.Networks))
	for _, network := range s.Networks {
		codes = append(codes, network.Raw.Code)
	}
	return codes
}

// Network is an applicable network bound to its localization bundle.
type Network struct {
	Raw        payment.ApplicableNetwork
	Translator *localization.Bundle
	Label      string

	logo logo
}

// NewNetwork binds raw to translator and resolves its display label.
func NewNetwork(raw payment.ApplicableNetwork, translator *localization.Bundle) *Network {
	label, ok := translator.Translate(localization.KeyNetworkName)
	if !ok || label == "" {
		label = raw.Label
	}
	return &Network{Raw: raw, Translator: translator, Label: label}
}

// Code returns the network code.
func (n *Network) Code() string { return n.Raw.Code }

// Logo returns the logo bytes, nil until loaded.
func (n *Network) Logo() []byte { return n.logo.get() }

// SetLogo stores the logo bytes.
func (n *Network) SetLogo(data []byte) { n.logo.set(data) }

// SubmitLabel returns the localized submit button label.
func (n *Network) SubmitLabel() string {
	return buttonLabel(n.Translator, n.Raw.Button)
}

// Account is a registered account bound to its localization bundle.
type Account struct {
	Raw        payment.AccountRegistration
	Translator *localization.Bundle
	Label      string

	logo logo
}

// NewAccount binds raw to translator. The label prefers the masked display
// label and falls back to the network label.
func NewAccount(raw payment.AccountRegistration, translator *localization.Bundle) *Account {
	label := raw.MaskedAccount.DisplayLabel
	if label == "" {
		if value, ok := translator.Translate(localization.KeyNetworkName); ok {
			label = value
		} else {
			label = raw.Label
		}
	}
	return &Account{Raw: raw, Translator: translator, Label: label}
}

// Code returns the network code of the account.
func (a *Account) Code() string { return a.Raw.Code }

// Logo returns the logo bytes, nil until loaded.
func (a *Account) Logo() []byte { return a.logo.get() }

// SetLogo stores the logo bytes.
func (a *Account) SetLogo(data []byte) { a.logo.set(data) }

// SubmitLabel returns the localized submit button label.
func (a *Account) SubmitLabel() string {
	return buttonLabel(a.Translator, a.Raw.Button)
}

func buttonLabel(t *localization.Bundle, key string) string {
	if key != "" {
		if value, ok := t.Translate(key); ok {
			return value
		}
	}
	return localization.Text(t, localization.KeyPayLabel)
}

type logo struct {
	mu   sync.RWMutex
	data []byte
}

func (l *logo) get() []byte {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data
}

func (l *logo) set(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = data
}
