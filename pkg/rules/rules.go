package rules

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// GroupingRule maps a card brand to the account number prefixes it owns.
type GroupingRule struct {
	Code  string
	Regex string

	re *regexp.Regexp
}

// Matches reports whether number belongs to the brand.
func (r GroupingRule) Matches(number string) bool {
	return r.re != nil && r.re.MatchString(number)
}

// SwitchRule lists the prefix patterns used to detect a network while an
// account number is being typed.
type SwitchRule struct {
	Code     string
	Patterns []string

	compiled []*regexp.Regexp
}

// Matches reports whether number satisfies at least one pattern. A nil rule
// never matches.
func (r *SwitchRule) Matches(number string) bool {
	if r == nil {
		return false
	}
	for _, re := range r.compiled {
		if re.MatchString(number) {
			return true
		}
	}
	return false
}

type groupsFile struct {
	Items []struct {
		Code  string `json:"code" yaml:"code"`
		Regex string `json:"regex" yaml:"regex"`
	} `json:"items" yaml:"items"`
}

type switchFile struct {
	Items []struct {
		Code     string   `json:"code" yaml:"code"`
		Patterns []string `json:"patterns" yaml:"patterns"`
	} `json:"items" yaml:"items"`
}

// ParseGroupingRules parses a JSON or YAML grouping table.
func ParseGroupingRules(data []byte, source string) ([]GroupingRule, error) {
	var doc groupsFile
	if err := decode(data, source, &doc); err != nil {
		return nil, err
	}

	out := make([]GroupingRule, 0, len(doc.Items))
	seen := make(map[string]struct{}, len(doc.Items))
	for _, item := range doc.Items {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			return nil, fmt.Errorf("rules: %s defines a grouping rule without code", source)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("rules: %s defines duplicate grouping rule %q", source, code)
		}
		seen[code] = struct{}{}

		re, err := regexp.Compile(item.Regex)
		if err != nil {
			return nil, fmt.Errorf("rules: %s grouping rule %q: %w", source, code, err)
		}
		out = append(out, GroupingRule{Code: code, Regex: item.Regex, re: re})
	}
	return out, nil
}

// ParseSwitchRules parses a JSON or YAML smart switch table.
func ParseSwitchRules(data []byte, source string) ([]SwitchRule, error) {
	var doc switchFile
	if err := decode(data, source, &doc); err != nil {
		return nil, err
	}

	out := make([]SwitchRule, 0, len(doc.Items))
	seen := make(map[string]struct{}, len(doc.Items))
	for _, item := range doc.Items {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			return nil, fmt.Errorf("rules: %s defines a switch rule without code", source)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("rules: %s defines duplicate switch rule %q", source, code)
		}
		seen[code] = struct{}{}
		if len(item.Patterns) == 0 {
			return nil, fmt.Errorf("rules: %s switch rule %q has no patterns", source, code)
		}

		rule := SwitchRule{
			Code:     code,
			Patterns: append([]string(nil), item.Patterns...),
			compiled: make([]*regexp.Regexp, 0, len(item.Patterns)),
		}
		for _, pattern := range item.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("rules: %s switch rule %q: %w", source, code, err)
			}
			rule.compiled = append(rule.compiled, re)
		}
		out = append(out, rule)
	}
	return out, nil
}

// NewSwitchRule compiles a rule outside of a table, mainly for tests and
// callers that ship their own patterns.
func NewSwitchRule(code string, patterns ...string) (*SwitchRule, error) {
	rule := &SwitchRule{Code: code, Patterns: append([]string(nil), patterns...)}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("rules: switch rule %q: %w", code, err)
		}
		rule.compiled = append(rule.compiled, re)
	}
	return rule, nil
}

func decode(data []byte, source string, out any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("rules: file %s is empty", source)
	}
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("rules: parse %s: %w", source, err)
	}
	return nil
}
