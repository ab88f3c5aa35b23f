package rules

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

//go:embed tables/*.yaml
var embeddedTables embed.FS

// EmbeddedFS returns the bundled rule tables.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedTables, "tables")
	if err != nil {
		panic(err)
	}
	return sub
}

// Repository holds the compiled grouping and smart switch rules. It is
// read-only after construction and safe for concurrent use.
type Repository struct {
	grouping []GroupingRule
	switches []SwitchRule
	byCode   map[string]*SwitchRule
}

var (
	defaultOnce sync.Once
	defaultRepo *Repository
	defaultErr  error
)

// Default returns the process wide repository built from the embedded tables.
func Default() (*Repository, error) {
	defaultOnce.Do(func() {
		defaultRepo, defaultErr = LoadFS(EmbeddedFS())
	})
	return defaultRepo, defaultErr
}

// LoadFS reads groups.{yaml,yml,json} and switch.{yaml,yml,json} from fsys.
func LoadFS(fsys fs.FS) (*Repository, error) {
	if fsys == nil {
		return nil, errors.New("rules: filesystem is nil")
	}

	groupsData, groupsName, err := readFirst(fsys, "groups")
	if err != nil {
		return nil, err
	}
	switchData, switchName, err := readFirst(fsys, "switch")
	if err != nil {
		return nil, err
	}

	grouping, err := ParseGroupingRules(groupsData, groupsName)
	if err != nil {
		return nil, err
	}
	switches, err := ParseSwitchRules(switchData, switchName)
	if err != nil {
		return nil, err
	}
	return New(grouping, switches), nil
}

// New builds a repository from already parsed rules.
func New(grouping []GroupingRule, switches []SwitchRule) *Repository {
	repo := &Repository{
		grouping: append([]GroupingRule(nil), grouping...),
		switches: append([]SwitchRule(nil), switches...),
		byCode:   make(map[string]*SwitchRule, len(switches)),
	}
	for i := range repo.switches {
		repo.byCode[repo.switches[i].Code] = &repo.switches[i]
	}
	return repo
}

// SwitchRule returns the smart switch rule for code, or nil when none exists.
func (r *Repository) SwitchRule(code string) *SwitchRule {
	if r == nil {
		return nil
	}
	return r.byCode[code]
}

// SwitchRules returns the switch rules in table order.
func (r *Repository) SwitchRules() []SwitchRule {
	if r == nil {
		return nil
	}
	return append([]SwitchRule(nil), r.switches...)
}

// GroupingRules returns the grouping rules in table order.
func (r *Repository) GroupingRules() []GroupingRule {
	if r == nil {
		return nil
	}
	return append([]GroupingRule(nil), r.grouping...)
}

// Brand returns the code of the first grouping rule matching number.
func (r *Repository) Brand(number string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, rule := range r.grouping {
		if rule.Matches(number) {
			return rule.Code, true
		}
	}
	return "", false
}

func readFirst(fsys fs.FS, base string) ([]byte, string, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		name := base + ext
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return data, name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("rules: read %s: %w", name, err)
		}
	}
	return nil, "", fmt.Errorf("rules: %s table not found", base)
}
