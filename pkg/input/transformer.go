package input

import (
	"log/slog"

	"github.com/goliatone/go-checkout/internal/logging"
	"github.com/goliatone/go-checkout/pkg/failure"
	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/rules"
	"github.com/goliatone/go-checkout/pkg/session"
	"github.com/goliatone/go-checkout/pkg/validation"
)

// Checkbox names and their label keys.
const (
	RegistrationCheckbox    = "autoRegistration"
	RegistrationCheckboxKey = "autoRegistrationLabel"
	RecurrenceCheckbox      = "allowRecurrence"
	RecurrenceCheckboxKey   = "allowRecurrenceLabel"
)

type ignoredElement struct {
	networkCode string
	name        string
}

var ignoredElements = []ignoredElement{
	{networkCode: "SEPADD", name: ElementBIC},
}

func ignored(networkCode, name string) bool {
	for _, entry := range ignoredElements {
		if entry.networkCode == networkCode && entry.name == name {
			return true
		}
	}
	return false
}

// Transformer converts localized networks into form models. It performs no
// I/O and is safe for concurrent use.
type Transformer struct {
	rules      *rules.Repository
	validation *validation.Provider
	logger     *slog.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithRules overrides the smart switch rule repository.
func WithRules(repo *rules.Repository) Option {
	return func(t *Transformer) {
		t.rules = repo
	}
}

// WithValidation overrides the validation rule provider.
func WithValidation(provider *validation.Provider) Option {
	return func(t *Transformer) {
		t.validation = provider
	}
}

// WithLogger sets the logger used for internal errors.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// NewTransformer builds a transformer. The bundled rule tables are used unless
// overridden; a table that fails to load is logged and treated as empty.
func NewTransformer(options ...Option) *Transformer {
	t := &Transformer{}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	t.logger = logging.OrDiscard(t.logger)

	if t.rules == nil {
		repo, err := rules.Default()
		if err != nil {
			t.logger.Error("load smart switch rules", "error", &failure.InternalError{Message: "smart switch rules", Err: err})
		}
		t.rules = repo
	}
	if t.validation == nil {
		provider, err := validation.Default()
		if err != nil {
			t.logger.Error("load validation rules", "error", &failure.InternalError{Message: "validation rules", Err: err})
		}
		t.validation = provider
	}
	return t
}

// Transform builds the form model of an applicable network.
func (t *Transformer) Transform(network *session.Network) *Network {
	raw := network.Raw
	translator := translatorOf(network.Translator)

	return &Network{
		Code:         raw.Code,
		Label:        network.Label,
		Method:       raw.Method,
		OperationURL: raw.Link(payment.LinkOperation),
		Translator:   translator,
		Fields:       t.fields(raw.Code, raw.LocalizedInputElements, translator),
		Checkboxes: compact(
			t.checkbox(RegistrationCheckbox, RegistrationCheckboxKey, raw.RegistrationRequirement(), translator),
			t.checkbox(RecurrenceCheckbox, RecurrenceCheckboxKey, raw.RecurrenceRequirement(), translator),
		),
		Submit:     Button{Label: network.SubmitLabel()},
		SwitchRule: t.rules.SwitchRule(raw.Code),
		logo:       network,
	}
}

// TransformAccount builds the form model of a registered account. Accounts
// never carry checkboxes or a switch rule.
func (t *Transformer) TransformAccount(account *session.Account) *Network {
	raw := account.Raw
	translator := translatorOf(account.Translator)

	return &Network{
		Code:         raw.Code,
		Label:        account.Label,
		Method:       raw.Method,
		OperationURL: raw.Link(payment.LinkOperation),
		Translator:   translator,
		Fields:       t.fields(raw.Code, raw.LocalizedInputElements, translator),
		Submit:       Button{Label: account.SubmitLabel()},
		logo:         account,
	}
}

// TransformAll transforms networks preserving their order.
func (t *Transformer) TransformAll(networks []*session.Network) []*Network {
	out := make([]*Network, 0, len(networks))
	for _, n := range networks {
		out = append(out, t.Transform(n))
	}
	return out
}

func (t *Transformer) fields(networkCode string, elements []payment.InputElement, translator localization.Translator) []*Field {
	monthIdx, yearIdx := -1, -1
	for i, element := range elements {
		switch element.Name {
		case ElementExpiryMonth:
			monthIdx = i
		case ElementExpiryYear:
			yearIdx = i
		}
	}
	merge := monthIdx >= 0 && yearIdx >= 0
	mergeAt := min(monthIdx, yearIdx)

	out := make([]*Field, 0, len(elements))
	seen := make(map[string]struct{}, len(elements))
	if merge {
		seen[ElementExpiryDate] = struct{}{}
	}
	for i, element := range elements {
		if merge && (i == monthIdx || i == yearIdx) {
			if i == mergeAt {
				out = append(out, t.expiryDate(networkCode, translator))
			}
			continue
		}
		if ignored(networkCode, element.Name) {
			continue
		}
		if _, dup := seen[element.Name]; dup {
			t.logger.Warn("duplicate input element dropped", "network", networkCode, "element", element.Name)
			continue
		}
		seen[element.Name] = struct{}{}
		out = append(out, t.field(networkCode, element, translator))
	}
	return out
}

func (t *Transformer) field(networkCode string, element payment.InputElement, translator localization.Translator) *Field {
	if element.Type == payment.InputTypeSelect && len(element.Options) == 1 {
		f := NewHidden(element.Name, element.Options[0].Value)
		f.elementType = element.Type
		f.options = append([]payment.SelectOption(nil), element.Options...)
		f.translator = translator
		return f
	}

	f := newField(element.Name, variantFor(element), translator, t.rule(networkCode, element.Name), t.logger)
	f.elementType = element.Type
	f.options = append([]payment.SelectOption(nil), element.Options...)
	f.labelKey = element.LabelKey
	for _, option := range element.Options {
		if option.Selected {
			f.value = option.Value
			break
		}
	}
	return f
}

func (t *Transformer) expiryDate(networkCode string, translator localization.Translator) *Field {
	return newField(ElementExpiryDate, expiryDateVariant, translator, t.rule(networkCode, ElementExpiryDate), t.logger)
}

func (t *Transformer) rule(networkCode, name string) *validation.Rule {
	rule, ok := t.validation.Rule(networkCode, name)
	if !ok {
		return nil
	}
	return rule
}

// checkbox maps a requirement to a checkbox: OPTIONAL is off, OPTIONAL_PRESELECTED
// is on, FORCED and FORCED_DISPLAYED are on and hidden, anything else is
// omitted.
func (t *Transformer) checkbox(name, labelKey string, requirement payment.Requirement, translator localization.Translator) *Field {
	var on, hidden bool
	switch requirement {
	case payment.RequirementOptional:
	case payment.RequirementOptionalPreselected:
		on = true
	case payment.RequirementForced, payment.RequirementForcedDisplayed:
		on, hidden = true, true
	default:
		return nil
	}
	f := newField(name, checkboxVariant, translator, nil, t.logger)
	f.elementType = payment.InputTypeCheckbox
	f.labelKey = labelKey
	f.on = on
	f.hidden = hidden
	return f
}

func compact(fields ...*Field) []*Field {
	out := make([]*Field, 0, len(fields))
	for _, f := range fields {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// translatorOf avoids storing a typed nil bundle inside the interface.
func translatorOf(b *localization.Bundle) localization.Translator {
	if b == nil {
		return nil
	}
	return b
}
