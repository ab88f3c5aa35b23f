package render

import (
	"io"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-checkout/pkg/input"
	"github.com/goliatone/go-checkout/pkg/localization"
	"github.com/goliatone/go-checkout/pkg/rules"
	"github.com/goliatone/go-checkout/pkg/session"
	"github.com/goliatone/go-checkout/pkg/smartswitch"
)

// Template names of the built-in views.
const (
	TemplateSession  = "session"
	TemplateNetwork  = "network"
	TemplateAlert    = "alert"
	TemplateDetected = "detected"
)

// KeyCardsGroup labels the grouped card row of a session listing.
const KeyCardsGroup = "networks.group.cards"

// Session renders the payment method list of s. Card networks covered by a
// grouping rule of repo share one row; a nil repo lists every network alone.
func (e *Engine) Session(s *session.Session, repo *rules.Repository, out ...io.Writer) (string, error) {
	return e.RenderTemplate(TemplateSession, SessionContext(s, repo), out...)
}

// Network renders the form of n.
func (e *Engine) Network(n *input.Network, out ...io.Writer) (string, error) {
	return e.RenderTemplate(TemplateNetwork, NetworkContext(n), out...)
}

// Alert renders an error alert.
func (e *Engine) Alert(a localization.Alert, out ...io.Writer) (string, error) {
	return e.RenderTemplate(TemplateAlert, AlertContext(a), out...)
}

// Detected renders a smart switch selection.
func (e *Engine) Detected(d smartswitch.Detected, out ...io.Writer) (string, error) {
	return e.RenderTemplate(TemplateDetected, DetectedContext(d), out...)
}

// SessionContext builds the template data of a session listing.
func SessionContext(s *session.Session, repo *rules.Repository) pongo2.Context {
	if s == nil {
		return pongo2.Context{}
	}

	labels := make(map[string]string, len(s.Networks))
	codes := make([]string, 0, len(s.Networks))
	for _, n := range s.Networks {
		labels[n.Code()] = n.Label
		codes = append(codes, n.Code())
	}

	var grouped []rules.Row
	if repo != nil {
		grouped = repo.Group(codes)
	} else {
		for _, code := range codes {
			grouped = append(grouped, rules.Row{Codes: []string{code}})
		}
	}

	rows := make([]map[string]any, 0, len(grouped))
	for _, row := range grouped {
		rowLabels := make([]string, 0, len(row.Codes))
		for _, code := range row.Codes {
			rowLabels = append(rowLabels, labels[code])
		}
		rows = append(rows, map[string]any{
			"grouped": row.Grouped,
			"codes":   row.Codes,
			"labels":  rowLabels,
		})
	}

	accounts := make([]map[string]any, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		accounts = append(accounts, map[string]any{
			"code":  a.Code(),
			"label": a.Label,
		})
	}

	cards, ok := localization.Lookup(s.Shared, KeyCardsGroup)
	if !ok {
		cards = "Cards"
	}

	return pongo2.Context{
		"title":     localization.Text(s.Shared, localization.KeyListTitle),
		"operation": s.OperationType,
		"cards":     cards,
		"rows":      rows,
		"accounts":  accounts,
	}
}

// NetworkContext builds the template data of a network form.
func NetworkContext(n *input.Network) pongo2.Context {
	if n == nil {
		return pongo2.Context{}
	}
	fields := make([]map[string]any, 0, len(n.Fields))
	for _, f := range n.Fields {
		fields = append(fields, map[string]any{
			"name":        f.Name(),
			"kind":        string(f.Kind()),
			"label":       f.Label(),
			"placeholder": f.Placeholder(),
			"value":       f.Value(),
			"error":       f.ErrorText(),
			"hidden":      f.IsHidden(),
			"sensitive":   sensitive(f.Kind()),
		})
	}
	checkboxes := make([]map[string]any, 0, len(n.Checkboxes))
	for _, c := range n.Checkboxes {
		checkboxes = append(checkboxes, map[string]any{
			"name":   c.Name(),
			"label":  c.Label(),
			"on":     c.IsOn(),
			"hidden": c.IsHidden(),
		})
	}
	return pongo2.Context{
		"code":       n.Code,
		"label":      n.Label,
		"fields":     fields,
		"checkboxes": checkboxes,
		"submit":     n.Submit.Label,
	}
}

// AlertContext builds the template data of an alert.
func AlertContext(a localization.Alert) pongo2.Context {
	return pongo2.Context{
		"title":   a.Title,
		"message": a.Message,
		"retry":   a.Retry,
		"actions": a.Actions,
	}
}

// DetectedContext builds the template data of a selection.
func DetectedContext(d smartswitch.Detected) pongo2.Context {
	codes := make([]string, 0)
	for _, n := range d.Networks() {
		codes = append(codes, n.Code)
	}
	ctx := pongo2.Context{
		"generic": d.Generic(),
		"codes":   codes,
	}
	if n := d.Network(); n != nil && !d.Generic() {
		ctx["code"] = n.Code
		ctx["label"] = n.Label
	}
	return ctx
}

func sensitive(kind input.Kind) bool {
	return kind == input.KindAccountNumber || kind == input.KindVerificationCode
}
