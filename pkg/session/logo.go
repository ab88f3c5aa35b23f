package session

import (
	"context"
	"sync"

	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/transport"
)

// LogoOwner is a network or account whose logo can be fetched lazily.
type LogoOwner interface {
	Code() string
	LogoURL() string
	SetLogo(data []byte)
}

// LogoURL returns the logo link of the network.
func (n *Network) LogoURL() string { return n.Raw.Link(payment.LinkLogo) }

// LogoURL returns the logo link of the account.
func (a *Account) LogoURL() string { return a.Raw.Link(payment.LinkLogo) }

// LoadLogo fetches the logo of owner. Failures are logged and leave the logo
// empty; they never surface to the caller. Calls are not de-duplicated.
func (l *Loader) LoadLogo(ctx context.Context, owner LogoOwner) {
	target := owner.LogoURL()
	if target == "" {
		return
	}
	data, err := l.transport.Send(ctx, transport.Get(target, nil))
	if err != nil {
		l.logger.Debug("logo download failed", "code", owner.Code(), "url", target, "error", err)
		return
	}
	owner.SetLogo(data)
}

// LoadLogos fetches every network and account logo of s concurrently and
// waits for all of them.
func (l *Loader) LoadLogos(ctx context.Context, s *Session) {
	if s == nil {
		return
	}
	var wg sync.WaitGroup
	load := func(owner LogoOwner) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.LoadLogo(ctx, owner)
		}()
	}
	for _, n := range s.Networks {
		load(n)
	}
	for _, a := range s.Accounts {
		load(a)
	}
	wg.Wait()
}
