package validation

import (
	"errors"
	"testing"

	"github.com/goliatone/go-checkout/pkg/failure"
)

func TestDefault_RuleLookup(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default provider: %v", err)
	}

	rule, ok := p.Rule("VISA", "number")
	if !ok || !rule.Luhn || rule.MinLength != 13 || rule.NetworkCode != "VISA" {
		t.Fatalf("unexpected VISA number rule %+v (ok=%v)", rule, ok)
	}

	rule, ok = p.Rule("DINERS", "holderName")
	if !ok || rule.NetworkCode != "" {
		t.Fatalf("expected default holderName rule, got %+v (ok=%v)", rule, ok)
	}

	rule, ok = p.Rule("SEPADD", "holderName")
	if !ok || rule.MaxLength != 70 {
		t.Fatalf("expected SEPADD override, got %+v", rule)
	}

	if _, ok := p.Rule("VISA", "customerNote"); ok {
		t.Fatal("expected a miss for unknown field")
	}
}

func TestCheck(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default provider: %v", err)
	}
	visaNumber, _ := p.Rule("VISA", "number")
	bankCode, _ := p.Rule("SEPADD", "bankCode")

	cases := []struct {
		name  string
		value string
		rule  *Rule
		mode  Mode
		want  failure.ValidationKind
	}{
		{"nil rule", "anything", nil, FullCheck, ""},
		{"precheck accepts empty", "", visaNumber, PreCheck, ""},
		{"fullcheck requires value", "", visaNumber, FullCheck, failure.MissingValue},
		{"valid visa", "4111111111111111", visaNumber, FullCheck, ""},
		{"wrong prefix", "5111111111111111", visaNumber, PreCheck, failure.InvalidValue},
		{"too short", "411111", visaNumber, PreCheck, failure.IncorrectLength},
		{"luhn failure", "4111111111111112", visaNumber, FullCheck, failure.InvalidValue},
		{"letters in bank code", "12ab", bankCode, PreCheck, failure.InvalidValue},
		{"bank code too long", "1234567890123", bankCode, PreCheck, failure.IncorrectLength},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.value, tc.rule, tc.mode)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var validationErr *failure.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if validationErr.Kind != tc.want {
				t.Fatalf("kind = %s, want %s", validationErr.Kind, tc.want)
			}
		})
	}
}

func TestLuhnValid(t *testing.T) {
	cases := map[string]bool{
		"4111111111111111": true,
		"378282246310005":  true,
		"4111111111111112": false,
		"41x1":             false,
		"":                 false,
	}
	for input, want := range cases {
		if got := LuhnValid(input); got != want {
			t.Errorf("LuhnValid(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "  ",
		"missing name":   "defaults:\n  - pattern: '^x$'\n",
		"bad bounds":     "defaults:\n  - name: a\n    minLength: 5\n    maxLength: 2\n",
		"bad pattern":    "defaults:\n  - name: a\n    pattern: '('\n",
		"duplicate code": "networks:\n  - code: VISA\n  - code: VISA\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load([]byte(data), "test.yaml"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewRule(t *testing.T) {
	rule, err := NewRule("VISA", "number", "^4")
	if err != nil {
		t.Fatalf("new rule: %v", err)
	}
	if err := Check("5", rule, PreCheck); err == nil {
		t.Fatal("expected pattern mismatch")
	}
	if _, err := NewRule("VISA", "number", "("); err == nil {
		t.Fatal("expected compile error")
	}
}
