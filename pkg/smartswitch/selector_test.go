package smartswitch

import (
	"errors"
	"testing"

	"github.com/goliatone/go-checkout/pkg/input"
	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/rules"
	"github.com/goliatone/go-checkout/pkg/session"
)

func mustNetwork(t *testing.T, code string, patterns ...string) *input.Network {
	t.Helper()
	n := &input.Network{Code: code, Label: code + " label"}
	if len(patterns) > 0 {
		rule, err := rules.NewSwitchRule(code, patterns...)
		if err != nil {
			t.Fatalf("switch rule: %v", err)
		}
		n.SwitchRule = rule
	}
	return n
}

func cardNetworks(t *testing.T) []*input.Network {
	return []*input.Network{
		mustNetwork(t, "VISA", "^4[0-9]*$"),
		mustNetwork(t, "MASTERCARD", "^5[1-5][0-9]*$", "^2[2-7][0-9]*$"),
		mustNetwork(t, "SEPADD"),
	}
}

func TestNew(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoNetworks) {
		t.Fatalf("expected ErrNoNetworks, got %v", err)
	}

	many, err := New(cardNetworks(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !many.Selected().Generic() {
		t.Fatal("several networks start generic")
	}
	if many.Network().Code != "VISA" {
		t.Fatalf("generic selection shows the first network, got %s", many.Network().Code)
	}

	single, err := New([]*input.Network{mustNetwork(t, "VISA", "^4")})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if single.Selected().Generic() || single.Network().Code != "VISA" {
		t.Fatal("a single network starts specific")
	}
	if single.SuffixKey() != SuffixSpecific {
		t.Fatalf("suffix = %s", single.SuffixKey())
	}
}

func TestSelect_EmptyAlwaysGeneric(t *testing.T) {
	networks := cardNetworks(t)
	s, _ := New(networks)

	s.Select("4111")
	got := s.Select("")
	if !got.Generic() {
		t.Fatal("empty input must be generic")
	}
	if len(got.Networks()) != len(networks) {
		t.Fatalf("generic must carry every network, got %d", len(got.Networks()))
	}
	for i, n := range got.Networks() {
		if n != networks[i] {
			t.Fatalf("network %d out of order", i)
		}
	}
}

func TestSelect_SpecificAndGeneric(t *testing.T) {
	s, _ := New(cardNetworks(t))

	visa := s.Select("4111111111111111")
	if visa.Generic() || visa.Network().Code != "VISA" {
		t.Fatalf("expected specific VISA, got %s", visa)
	}
	if s.SuffixKey() != SuffixSpecific {
		t.Fatalf("suffix = %s", s.SuffixKey())
	}

	if got := s.Select("9999"); !got.Generic() {
		t.Fatalf("no match must be generic, got %s", got)
	}
	if s.SuffixKey() != SuffixGeneric {
		t.Fatalf("suffix = %s", s.SuffixKey())
	}

	if got := s.Select("5105 1051-0510 5100"); got.Generic() || got.Network().Code != "MASTERCARD" {
		t.Fatalf("separators must be ignored, got %s", got)
	}
}

func TestSelect_AmbiguousMatchIsGeneric(t *testing.T) {
	networks := []*input.Network{
		mustNetwork(t, "DISCOVER", "^62212[6-9][0-9]*$"),
		mustNetwork(t, "UNIONPAY", "^62[0-9]*$"),
	}
	s, _ := New(networks)

	if got := s.Select("62"); got.Generic() || got.Network().Code != "UNIONPAY" {
		t.Fatalf("expected UNIONPAY, got %s", got)
	}
	if got := s.Select("6221261234"); !got.Generic() {
		t.Fatalf("two matches must fall back to generic, got %s", got)
	}
}

func TestSelect_Idempotent(t *testing.T) {
	s, _ := New(cardNetworks(t))
	for _, number := range []string{"", "4", "51", "9999", "2221"} {
		first := s.Select(number)
		second := s.Select(number)
		if !first.Equal(second) {
			t.Fatalf("Select(%q) not idempotent: %s vs %s", number, first, second)
		}
	}
}

func TestDetected_Equal(t *testing.T) {
	networks := cardNetworks(t)
	s, _ := New(networks)

	generic := s.Select("")
	visa := s.Select("4")
	visaAgain := s.Select("41")
	master := s.Select("55")

	if !visa.Equal(visaAgain) {
		t.Fatal("same specific network must be equal")
	}
	if visa.Equal(master) || visa.Equal(generic) {
		t.Fatal("different selections must differ")
	}

	relabelled := &input.Network{Code: "VISA", Label: "VISA label", SwitchRule: networks[0].SwitchRule}
	other, _ := New([]*input.Network{relabelled, networks[1], networks[2]})
	if !other.Select("4").Equal(visa) {
		t.Fatal("networks compare by code and label")
	}
	if !other.Select("").Equal(generic) {
		t.Fatal("generic selections over equal network sets are equal")
	}

	shorter, _ := New(networks[:2])
	if shorter.Select("").Equal(generic) {
		t.Fatal("generic selections over different sets differ")
	}
}

func TestSelector_DrivesVerificationPlaceholders(t *testing.T) {
	bundle := localization.NewBundle(map[string]string{
		"account.verificationCode.generic.placeholder":  "CVV",
		"account.verificationCode.specific.placeholder": "3 digits",
	})
	cvv := []payment.InputElement{{Name: "verificationCode", Type: payment.InputTypeInteger}}
	tr := input.NewTransformer()
	networks := tr.TransformAll([]*session.Network{
		session.NewNetwork(payment.ApplicableNetwork{Code: "VISA", Label: "Visa", LocalizedInputElements: cvv}, bundle),
		session.NewNetwork(payment.ApplicableNetwork{Code: "MASTERCARD", Label: "Mastercard", LocalizedInputElements: cvv}, bundle),
	})

	s, err := New(networks)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	detach := input.BindSuffixer(s, networks...)
	defer detach()

	field, _ := networks[0].Field("verificationCode")
	if got := field.Placeholder(); got != "CVV" {
		t.Fatalf("generic placeholder = %q", got)
	}
	s.Select("4111")
	if got := field.Placeholder(); got != "3 digits" {
		t.Fatalf("specific placeholder = %q", got)
	}
}
