package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables/rules.yaml
var embeddedRules []byte

// Provider resolves validation rules by network code and field name. It is
// read-only after construction.
type Provider struct {
	defaults map[string]*Rule
	networks map[string]map[string]*Rule
}

var (
	defaultOnce     sync.Once
	defaultProvider *Provider
	defaultErr      error
)

// Default returns the process wide provider parsed from the bundled table.
func Default() (*Provider, error) {
	defaultOnce.Do(func() {
		defaultProvider, defaultErr = Load(embeddedRules, "rules.yaml")
	})
	return defaultProvider, defaultErr
}

// Rule returns the rule for field under networkCode, falling back to the
// default rule for field. A miss means the field has no constraints.
func (p *Provider) Rule(networkCode, field string) (*Rule, bool) {
	if p == nil {
		return nil, false
	}
	if rules, ok := p.networks[networkCode]; ok {
		if rule, ok := rules[field]; ok {
			return rule, true
		}
	}
	rule, ok := p.defaults[field]
	return rule, ok
}

type fileRule struct {
	Name      string `json:"name" yaml:"name"`
	MinLength int    `json:"minLength" yaml:"minLength"`
	MaxLength int    `json:"maxLength" yaml:"maxLength"`
	Pattern   string `json:"pattern" yaml:"pattern"`
	Required  bool   `json:"required" yaml:"required"`
	Luhn      bool   `json:"luhn" yaml:"luhn"`
}

type rulesFile struct {
	Defaults []fileRule `json:"defaults" yaml:"defaults"`
	Networks []struct {
		Code   string     `json:"code" yaml:"code"`
		Fields []fileRule `json:"fields" yaml:"fields"`
	} `json:"networks" yaml:"networks"`
}

// Load parses a JSON or YAML rule table.
func Load(data []byte, source string) (*Provider, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("validation: file %s is empty", source)
	}
	var doc rulesFile
	if err := json.Unmarshal(data, &doc); err != nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("validation: parse %s: %w", source, err)
		}
	}

	p := &Provider{
		defaults: make(map[string]*Rule, len(doc.Defaults)),
		networks: make(map[string]map[string]*Rule, len(doc.Networks)),
	}
	for _, raw := range doc.Defaults {
		rule, err := compile("", raw, source)
		if err != nil {
			return nil, err
		}
		if _, dup := p.defaults[rule.Field]; dup {
			return nil, fmt.Errorf("validation: %s duplicate default rule %q", source, rule.Field)
		}
		p.defaults[rule.Field] = rule
	}
	for _, network := range doc.Networks {
		code := strings.TrimSpace(network.Code)
		if code == "" {
			return nil, fmt.Errorf("validation: %s defines a network without code", source)
		}
		if _, dup := p.networks[code]; dup {
			return nil, fmt.Errorf("validation: %s duplicate network %q", source, code)
		}
		fields := make(map[string]*Rule, len(network.Fields))
		for _, raw := range network.Fields {
			rule, err := compile(code, raw, source)
			if err != nil {
				return nil, err
			}
			if _, dup := fields[rule.Field]; dup {
				return nil, fmt.Errorf("validation: %s network %q duplicate field %q", source, code, rule.Field)
			}
			fields[rule.Field] = rule
		}
		p.networks[code] = fields
	}
	return p, nil
}

func compile(code string, raw fileRule, source string) (*Rule, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return nil, fmt.Errorf("validation: %s rule without field name (network %q)", source, code)
	}
	if raw.MinLength < 0 || raw.MaxLength < 0 || (raw.MaxLength > 0 && raw.MinLength > raw.MaxLength) {
		return nil, fmt.Errorf("validation: %s field %q has invalid length bounds", source, name)
	}
	rule := &Rule{
		NetworkCode: code,
		Field:       name,
		MinLength:   raw.MinLength,
		MaxLength:   raw.MaxLength,
		Pattern:     raw.Pattern,
		Required:    raw.Required,
		Luhn:        raw.Luhn,
	}
	if raw.Pattern != "" {
		re, err := regexp.Compile(raw.Pattern)
		if err != nil {
			return nil, fmt.Errorf("validation: %s field %q: %w", source, name, err)
		}
		rule.re = re
	}
	return rule, nil
}
