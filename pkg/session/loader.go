package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-checkout/internal/logging"
	internaltransport "github.com/goliatone/go-checkout/internal/transport"
	"github.com/goliatone/go-checkout/pkg/failure"
	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/transport"
)

// ListView is the view parameter requesting JSON form descriptors.
const ListView = "jsonForms,-htmlForms"

// DefaultSharedLocalizationFile replaces the last path segment of the first
// network's language link to address the session wide bundle.
const DefaultSharedLocalizationFile = "checkout.json"

// SupportedNetworks is the default allow-list of network codes.
var SupportedNetworks = []string{
	"AMEX", "CASTORAMA", "DINERS", "DISCOVER", "MASTERCARD", "UNIONPAY",
	"VISA", "VISA_DANKORT", "VISAELECTRON", "CARTEBANCAIRE", "MAESTRO",
	"MAESTROUK", "POSTEPAY", "SEPADD", "JCB",
}

// Option customises a Loader.
type Option func(*Loader)

// WithTransport injects the transport used for every request.
func WithTransport(t transport.Transport) Option {
	return func(l *Loader) {
		l.transport = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithSupportedNetworks replaces the allow-list.
func WithSupportedNetworks(codes ...string) Option {
	return func(l *Loader) {
		l.supported = toSet(codes)
	}
}

// WithSharedLocalizationFile overrides the file name of the shared bundle. An
// empty name downloads the first network's language link unchanged.
func WithSharedLocalizationFile(name string) Option {
	return func(l *Loader) {
		l.sharedFile = name
	}
}

// WithContract sets the contract list results are checked against. Passing
// nil disables the check.
func WithContract(c *payment.Contract) Option {
	return func(l *Loader) {
		l.contract = c
		l.contractSet = true
	}
}

// Loader runs the session pipeline. A Loader holds no per load state, so
// concurrent loads never observe each other.
type Loader struct {
	transport   transport.Transport
	logger      *slog.Logger
	supported   map[string]struct{}
	sharedFile  string
	contract    *payment.Contract
	contractSet bool
}

// NewLoader builds a loader. Without WithTransport an HTTP transport with
// default options is used.
func NewLoader(options ...Option) *Loader {
	l := &Loader{
		supported:  toSet(SupportedNetworks),
		sharedFile: DefaultSharedLocalizationFile,
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	l.logger = logging.OrDiscard(l.logger)
	if l.transport == nil {
		l.transport = internaltransport.New(transport.NewOptions(transport.WithLogger(l.logger)))
	}
	if !l.contractSet {
		contract, err := payment.DefaultContract()
		if err != nil {
			l.logger.Error("load list result contract", "error", err)
		}
		l.contract = contract
	}
	return l
}

// Load fetches the list result at sessionURL and assembles a session. Stages
// run strictly in order and the first failure aborts the load; no partial
// session is returned.
func (l *Loader) Load(ctx context.Context, sessionURL string) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("session: context is required")
	}
	if sessionURL == "" {
		return nil, failure.Configuration("session url is required")
	}

	listResult, err := l.fetchListResult(ctx, sessionURL)
	if err != nil {
		return nil, fmt.Errorf("session: fetch list result: %w", err)
	}

	shared, err := l.downloadSharedLocalization(ctx, listResult)
	if err != nil {
		return nil, fmt.Errorf("session: shared localization: %w", err)
	}

	if err := checkInteraction(listResult.Interaction, shared); err != nil {
		return nil, fmt.Errorf("session: interaction: %w", err)
	}

	networks, accounts := l.filterSupported(listResult)
	if len(networks) == 0 {
		return nil, fmt.Errorf("session: %w", failure.Configuration("no supported networks in list result"))
	}

	localizedNetworks, localizedAccounts, err := l.localize(ctx, shared, networks, accounts)
	if err != nil {
		return nil, fmt.Errorf("session: localize: %w", err)
	}

	s := &Session{
		OperationType: listResult.OperationType,
		Networks:      localizedNetworks,
		Accounts:      localizedAccounts,
		Links:         cloneLinks(listResult.Links),
		Shared:        shared.Bundle(),
	}
	l.logger.Info("session loaded",
		"operation", s.OperationType,
		"networks", len(s.Networks),
		"accounts", len(s.Accounts),
	)
	return s, nil
}

// LoadSingle localizes one already chosen network against an existing shared
// bundle. The resulting session holds exactly that network.
func (l *Loader) LoadSingle(ctx context.Context, raw payment.ApplicableNetwork, shared *localization.Bundle) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("session: context is required")
	}
	sharedURL, _ := l.sharedLocalizationURL(raw.Link(payment.LinkLanguage))
	bundle, err := l.networkBundle(ctx, shared, sharedURL, raw.Link(payment.LinkLanguage))
	if err != nil {
		return nil, fmt.Errorf("session: localize %s: %w", raw.Code, err)
	}
	return &Session{
		Networks: []*Network{NewNetwork(raw, bundle)},
		Shared:   shared,
	}, nil
}

func (l *Loader) fetchListResult(ctx context.Context, sessionURL string) (payment.ListResult, error) {
	body, err := l.transport.Send(ctx, transport.Get(sessionURL, url.Values{"view": {ListView}}))
	if err != nil {
		return payment.ListResult{}, err
	}
	result, err := payment.DecodeListResult(body)
	if err != nil {
		return payment.ListResult{}, err
	}
	if l.contract != nil {
		if err := l.contract.Check(body); err != nil {
			return payment.ListResult{}, err
		}
	}
	return result, nil
}

func (l *Loader) downloadSharedLocalization(ctx context.Context, listResult payment.ListResult) (*localization.Shared, error) {
	applicable := listResult.Networks.Applicable
	if len(applicable) == 0 || applicable[0].Link(payment.LinkLanguage) == "" {
		return nil, failure.Configuration("missing language link")
	}

	target, err := l.sharedLocalizationURL(applicable[0].Link(payment.LinkLanguage))
	if err != nil {
		return nil, &failure.ConfigurationError{Message: "invalid language link", Err: err}
	}

	values, err := l.fetchTranslations(ctx, target)
	if err != nil {
		return nil, err
	}
	shared := localization.NewShared()
	if err := shared.Populate(localization.NewBundle(values)); err != nil {
		return nil, err
	}
	l.logger.Debug("shared localization downloaded", "url", target, "keys", len(values))
	return shared, nil
}

func checkInteraction(interaction payment.Interaction, shared localization.Translator) error {
	if interaction.Code == payment.InteractionProceed {
		return nil
	}
	key := interaction.Code + "." + interaction.Reason
	if message, ok := shared.Translate(key); ok && message != "" {
		return &failure.UserFacingError{
			Message: message,
			Err:     &failure.ServerError{InteractionCode: interaction.Code, InteractionReason: interaction.Reason},
		}
	}
	return &failure.InternalError{
		Message: "unhandled interaction " + interaction.Code,
		Err:     errors.New(interaction.Reason),
	}
}

func (l *Loader) filterSupported(listResult payment.ListResult) ([]payment.ApplicableNetwork, []payment.AccountRegistration) {
	networks := make([]payment.ApplicableNetwork, 0, len(listResult.Networks.Applicable))
	for _, network := range listResult.Networks.Applicable {
		if _, ok := l.supported[network.Code]; ok {
			networks = append(networks, network)
			continue
		}
		l.logger.Debug("unsupported network dropped", "code", network.Code)
	}

	accounts := make([]payment.AccountRegistration, 0, len(listResult.Accounts))
	for _, account := range listResult.Accounts {
		if _, ok := l.supported[account.Code]; ok {
			accounts = append(accounts, account)
			continue
		}
		l.logger.Debug("unsupported account dropped", "code", account.Code)
	}
	return networks, accounts
}

// localize downloads the per network bundles concurrently. Results are placed
// by input index so assembly order never depends on completion order.
func (l *Loader) localize(ctx context.Context, shared *localization.Shared, networks []payment.ApplicableNetwork, accounts []payment.AccountRegistration) ([]*Network, []*Account, error) {
	base := shared.Bundle()
	sharedURL, _ := l.sharedLocalizationURL(networks[0].Link(payment.LinkLanguage))

	outNetworks := make([]*Network, len(networks))
	outAccounts := make([]*Account, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	for i, raw := range networks {
		i, raw := i, raw
		g.Go(func() error {
			bundle, err := l.networkBundle(gctx, base, sharedURL, raw.Link(payment.LinkLanguage))
			if err != nil {
				return fmt.Errorf("network %s: %w", raw.Code, err)
			}
			outNetworks[i] = NewNetwork(raw, bundle)
			return nil
		})
	}
	for i, raw := range accounts {
		i, raw := i, raw
		g.Go(func() error {
			bundle, err := l.networkBundle(gctx, base, sharedURL, raw.Link(payment.LinkLanguage))
			if err != nil {
				return fmt.Errorf("account %s: %w", raw.Code, err)
			}
			outAccounts[i] = NewAccount(raw, bundle)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return outNetworks, outAccounts, nil
}

func (l *Loader) networkBundle(ctx context.Context, shared *localization.Bundle, sharedURL, langURL string) (*localization.Bundle, error) {
	if langURL == "" || langURL == sharedURL {
		return shared.Merge(nil), nil
	}
	values, err := l.fetchTranslations(ctx, langURL)
	if err != nil {
		return nil, err
	}
	return shared.Merge(localization.NewBundle(values)), nil
}

func (l *Loader) fetchTranslations(ctx context.Context, target string) (map[string]string, error) {
	body, err := l.transport.Send(ctx, transport.Get(target, nil))
	if err != nil {
		return nil, err
	}
	return payment.DecodeTranslations(body)
}

func (l *Loader) sharedLocalizationURL(langLink string) (string, error) {
	if l.sharedFile == "" || langLink == "" {
		return langLink, nil
	}
	parsed, err := url.Parse(langLink)
	if err != nil {
		return "", err
	}
	parsed.Path = path.Join(path.Dir(parsed.Path), l.sharedFile)
	parsed.RawPath = ""
	return parsed.String(), nil
}

func toSet(codes []string) map[string]struct{} {
	out := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		out[code] = struct{}{}
	}
	return out
}

func cloneLinks(links map[string]string) map[string]string {
	if links == nil {
		return nil
	}
	out := make(map[string]string, len(links))
	for k, v := range links {
		out[k] = v
	}
	return out
}
