package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-checkout/internal/mockserver"
	"github.com/goliatone/go-checkout/pkg/failure"
	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/testsupport"
	"github.com/goliatone/go-checkout/pkg/transport"
)

func labels(s *Session) []string {
	out := make([]string, 0, len(s.Networks))
	for _, n := range s.Networks {
		out = append(out, n.Label)
	}
	return out
}

func TestLoader_LoadExample(t *testing.T) {
	srv, handler := testsupport.StartServer(t)

	s, err := NewLoader().Load(testsupport.Context(), testsupport.ListURL(srv, testsupport.ExampleList))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"VISA", "DINERS", "MASTERCARD", "SEPADD"}, s.Codes()); diff != "" {
		t.Fatalf("network codes mismatch (-want +got):\n%s", diff)
	}
	if s.Networks[1].Label != "Diners Club Localized" {
		t.Fatalf("second network label = %q", s.Networks[1].Label)
	}
	if diff := cmp.Diff([]string{"Visa", "Diners Club Localized", "Mastercard", "SEPA"}, labels(s)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if s.OperationType != payment.OperationCharge {
		t.Fatalf("operation type = %q", s.OperationType)
	}
	if len(s.Accounts) != 1 || s.Accounts[0].Code() != "VISA" {
		t.Fatalf("expected only the VISA account, got %d", len(s.Accounts))
	}
	if s.Accounts[0].Label != "41 *** 1111    12 | 30" {
		t.Fatalf("account label = %q", s.Accounts[0].Label)
	}
	if preselected, ok := s.PreselectedNetwork(); !ok || preselected.Code() != "VISA" {
		t.Fatal("VISA is flagged selected")
	}

	visa := s.Networks[0]
	if got := localization.Text(visa.Translator, "account.number.label"); got != "Card number" {
		t.Fatalf("network bundle not merged, got %q", got)
	}
	if got := localization.Text(visa.Translator, "account.holderName.label"); got != "Holder name" {
		t.Fatalf("shared bundle not inherited, got %q", got)
	}
	if got := visa.SubmitLabel(); got != "Pay now" {
		t.Fatalf("visa submit label = %q", got)
	}
	if got := s.Networks[1].SubmitLabel(); got != "Pay" {
		t.Fatalf("diners submit label = %q", got)
	}
	if _, ok := s.Networks[1].Translator.Translate("account.number.placeholder"); ok {
		t.Fatal("bundles of other networks must not leak")
	}

	if got := handler.Hits("/lang/en_US/checkout.json"); got != 1 {
		t.Fatalf("shared bundle downloaded %d times", got)
	}
	if got := handler.Hits("/lang/en_US/PAYPAL.json"); got != 0 {
		t.Fatal("unsupported networks must not be localized")
	}
}

func TestLoader_LoadFiltersToAllowList(t *testing.T) {
	srv, _ := testsupport.StartServer(t)

	tests := []struct {
		name      string
		supported []string
		want      []string
	}{
		{name: "default", want: []string{"VISA", "DINERS", "MASTERCARD", "SEPADD"}},
		{name: "cards only", supported: []string{"MASTERCARD", "VISA"}, want: []string{"VISA", "MASTERCARD"}},
		{name: "wallet allowed", supported: []string{"PAYPAL", "SEPADD"}, want: []string{"PAYPAL", "SEPADD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var options []Option
			if tt.supported != nil {
				options = append(options, WithSupportedNetworks(tt.supported...))
			}
			s, err := NewLoader(options...).Load(context.Background(), testsupport.ListURL(srv, testsupport.ExampleList))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(tt.want, s.Codes()); diff != "" {
				t.Fatalf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_LoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		options []mockserver.Option
		kind    failure.Kind
		message string
	}{
		{name: "known interaction", list: "abort", kind: failure.KindUserFacing, message: "The payment could not be processed. Please choose another method."},
		{name: "unknown interaction", list: "declined", kind: failure.KindInternal},
		{name: "no supported network", list: "unsupported", kind: failure.KindConfiguration},
		{name: "missing language link", list: "nolang", kind: failure.KindConfiguration, message: "missing language link"},
		{name: "unknown list", list: "missing", kind: failure.KindServer},
		{
			name:    "shared localization unavailable",
			list:    testsupport.ExampleList,
			options: []mockserver.Option{mockserver.WithStatus("/lang/en_US/checkout.json", http.StatusBadGateway)},
			kind:    failure.KindTransport,
		},
		{
			name:    "network localization unavailable",
			list:    testsupport.ExampleList,
			options: []mockserver.Option{mockserver.WithStatus("/lang/en_US/DINERS.json", http.StatusServiceUnavailable)},
			kind:    failure.KindTransport,
		},
		{
			name:    "malformed localization",
			list:    testsupport.ExampleList,
			options: []mockserver.Option{mockserver.WithResponse("/lang/en_US/MASTERCARD.json", http.StatusOK, []byte(`["not","a","map"]`))},
			kind:    failure.KindConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := testsupport.StartServer(t, tt.options...)

			s, err := NewLoader().Load(context.Background(), testsupport.ListURL(srv, tt.list))
			if err == nil {
				t.Fatal("expected error")
			}
			if s != nil {
				t.Fatal("failed loads must not return a session")
			}
			if got := failure.KindOf(err); got != tt.kind {
				t.Fatalf("kind = %q, want %q (%v)", got, tt.kind, err)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("error %q does not mention %q", err, tt.message)
			}
			if failure.Retryable(err) != (tt.kind == failure.KindTransport) {
				t.Fatalf("only transport errors are retryable")
			}
		})
	}
}

func TestLoader_UserFacingInteractionMessage(t *testing.T) {
	srv, _ := testsupport.StartServer(t)

	_, err := NewLoader().Load(context.Background(), testsupport.ListURL(srv, "abort"))
	var userErr *failure.UserFacingError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected user facing error, got %v", err)
	}
	var serverErr *failure.ServerError
	if !errors.As(err, &serverErr) || serverErr.LocalizationKey() != "ABORT.SYSTEM_FAILURE" {
		t.Fatalf("interaction must stay reachable, got %v", err)
	}
}

func TestLoader_LoadGzip(t *testing.T) {
	srv, _ := testsupport.StartServer(t, mockserver.WithGzip(true))

	s, err := NewLoader().Load(context.Background(), testsupport.ListURL(srv, testsupport.ExampleList))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Networks) != 4 {
		t.Fatalf("networks = %d", len(s.Networks))
	}
}

// memory serves fixed bodies keyed by URL and delays selected responses.
func memory(bodies map[string]string, delays map[string]time.Duration) transport.Func {
	return func(ctx context.Context, req transport.Request) ([]byte, error) {
		if d := delays[req.URL]; d > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return nil, &failure.TransportError{URL: req.URL, Err: ctx.Err()}
			}
		}
		body, ok := bodies[req.URL]
		if !ok {
			return nil, &failure.TransportError{URL: req.URL, StatusCode: http.StatusNotFound}
		}
		return []byte(body), nil
	}
}

const memoryList = `{
  "operationType": "CHARGE",
  "interaction": {"code": "PROCEED", "reason": "OK"},
  "networks": {"applicable": [
    {"code": "VISA", "label": "Visa", "method": "CREDIT_CARD", "links": {"lang": "mem://lang/VISA.json"}},
    {"code": "AMEX", "label": "Amex", "method": "CREDIT_CARD", "links": {"lang": "mem://lang/AMEX.json"}},
    {"code": "JCB", "label": "JCB", "method": "CREDIT_CARD", "links": {"lang": "mem://lang/JCB.json"}}
  ]}
}`

func TestLoader_AssemblesInInputOrder(t *testing.T) {
	bodies := map[string]string{
		"mem://list":               memoryList,
		"mem://lang/checkout.json": `{"button.pay.label":"Pay"}`,
		"mem://lang/VISA.json":     `{"network.label":"Visa L"}`,
		"mem://lang/AMEX.json":     `{"network.label":"Amex L"}`,
		"mem://lang/JCB.json":      `{"network.label":"JCB L"}`,
	}
	delays := map[string]time.Duration{
		"mem://lang/VISA.json": 60 * time.Millisecond,
		"mem://lang/AMEX.json": 30 * time.Millisecond,
	}

	s, err := NewLoader(WithTransport(memory(bodies, delays))).Load(context.Background(), "mem://list")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Visa L", "Amex L", "JCB L"}, labels(s)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_FirstLocalizationFailureCancelsOthers(t *testing.T) {
	bodies := map[string]string{
		"mem://list":               memoryList,
		"mem://lang/checkout.json": `{}`,
		"mem://lang/VISA.json":     `{}`,
		"mem://lang/AMEX.json":     `{}`,
	}
	delays := map[string]time.Duration{
		"mem://lang/VISA.json": 5 * time.Second,
		"mem://lang/AMEX.json": 5 * time.Second,
	}

	start := time.Now()
	_, err := NewLoader(WithTransport(memory(bodies, delays))).Load(context.Background(), "mem://list")
	if failure.KindOf(err) != failure.KindTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "JCB") {
		t.Fatalf("error should name the failing network, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("pending downloads were not cancelled")
	}
}

func TestLoader_ContractViolation(t *testing.T) {
	bodies := map[string]string{
		"mem://list": `{"interaction":{"code":"PROCEED","reason":"OK"},"networks":{"applicable":[{"code":"VISA"}]}}`,
	}

	_, err := NewLoader(WithTransport(memory(bodies, nil))).Load(context.Background(), "mem://list")
	if failure.KindOf(err) != failure.KindConfiguration || !strings.Contains(err.Error(), "contract") {
		t.Fatalf("expected contract violation, got %v", err)
	}

	_, err = NewLoader(WithTransport(memory(bodies, nil)), WithContract(nil)).Load(context.Background(), "mem://list")
	if err == nil || !strings.Contains(err.Error(), "missing language link") {
		t.Fatalf("without a contract the load must reach the localization stage, got %v", err)
	}
}

func TestLoader_RequestsJSONFormsView(t *testing.T) {
	var (
		mu    sync.Mutex
		views []string
	)
	tr := transport.Func(func(ctx context.Context, req transport.Request) ([]byte, error) {
		mu.Lock()
		views = append(views, req.Query.Get("view"))
		mu.Unlock()
		return nil, &failure.TransportError{URL: req.URL, Err: errors.New("offline")}
	})

	_, err := NewLoader(WithTransport(tr)).Load(context.Background(), "mem://list")
	if !failure.Retryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
	if diff := cmp.Diff([]string{ListView}, views); diff != "" {
		t.Fatalf("views mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_LoadRequiresURL(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), "")
	if failure.KindOf(err) != failure.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoader_LoadSingle(t *testing.T) {
	srv, _ := testsupport.StartServer(t)
	list := testsupport.MustLoadListResult(t, testsupport.ExampleList, srv.URL)
	shared := localization.NewBundle(testsupport.MustLoadTranslations(t, "lang/en_US/checkout.json"))

	s, err := NewLoader().LoadSingle(context.Background(), list.Networks.Applicable[1], shared)
	if err != nil {
		t.Fatalf("load single: %v", err)
	}
	if len(s.Networks) != 1 || s.Networks[0].Label != "Diners Club Localized" {
		t.Fatalf("unexpected single session %v", s.Codes())
	}
	if got := localization.Text(s.Networks[0].Translator, "autoRegistrationLabel"); got != "Save this account for later payments" {
		t.Fatalf("shared bundle not inherited, got %q", got)
	}
}

func TestLoader_LoadLogos(t *testing.T) {
	srv, handler := testsupport.StartServer(t)
	loader := NewLoader()

	s, err := loader.Load(context.Background(), testsupport.ListURL(srv, testsupport.ExampleList))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	loader.LoadLogos(context.Background(), s)

	for _, n := range s.Networks[:3] {
		if len(n.Logo()) == 0 {
			t.Fatalf("%s logo not loaded", n.Code())
		}
	}
	if s.Networks[3].Logo() != nil {
		t.Fatal("failed logo downloads leave the logo empty")
	}
	if len(s.Accounts[0].Logo()) == 0 {
		t.Fatal("account logo not loaded")
	}
	if got := handler.Hits("/logos/visa.svg"); got != 2 {
		t.Fatalf("logo downloads are not de-duplicated, got %d", got)
	}
}

func TestSharedLocalizationURL(t *testing.T) {
	tests := []struct {
		name string
		file string
		link string
		want string
	}{
		{name: "replaces file", file: "checkout.json", link: "https://h/lang/en_US/VISA.json", want: "https://h/lang/en_US/checkout.json"},
		{name: "keeps query", file: "checkout.json", link: "https://h/lang/de_DE/AMEX.json?v=2", want: "https://h/lang/de_DE/checkout.json?v=2"},
		{name: "link as is", file: "", link: "https://h/lang/en_US/VISA.json", want: "https://h/lang/en_US/VISA.json"},
		{name: "empty link", file: "checkout.json", link: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(WithSharedLocalizationFile(tt.file), WithTransport(memory(nil, nil)))
			got, err := l.sharedLocalizationURL(tt.link)
			if err != nil {
				t.Fatalf("url: %v", err)
			}
			if got != tt.want {
				t.Fatalf("url = %q, want %q", got, tt.want)
			}
		})
	}
}
