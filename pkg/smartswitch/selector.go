package smartswitch

import (
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-checkout/pkg/input"
)

// Placeholder suffixes returned by SuffixKey.
const (
	SuffixGeneric  = "generic"
	SuffixSpecific = "specific"
)

// ErrNoNetworks is returned when a selector is built without networks.
var ErrNoNetworks = errors.New("smartswitch: at least one network is required")

// Detected is the outcome of a selection: Generic over every candidate, or
// Specific to exactly one network.
type Detected struct {
	networks []*input.Network
	specific *input.Network
}

// Generic reports whether no single network has been narrowed down.
func (d Detected) Generic() bool { return d.specific == nil }

// Network returns the network whose fields should be shown: the matched
// network when specific, the first candidate otherwise.
func (d Detected) Network() *input.Network {
	if d.specific != nil {
		return d.specific
	}
	if len(d.networks) == 0 {
		return nil
	}
	return d.networks[0]
}

// Networks returns the candidates of a generic selection, or the single
// matched network.
func (d Detected) Networks() []*input.Network {
	if d.specific != nil {
		return []*input.Network{d.specific}
	}
	return append([]*input.Network(nil), d.networks...)
}

// Equal reports whether both values are generic over the same networks, or
// specific to the same network. Networks compare by code and label.
func (d Detected) Equal(other Detected) bool {
	if d.Generic() != other.Generic() {
		return false
	}
	if !d.Generic() {
		return d.specific.Equal(other.specific)
	}
	if len(d.networks) != len(other.networks) {
		return false
	}
	for i := range d.networks {
		if !d.networks[i].Equal(other.networks[i]) {
			return false
		}
	}
	return true
}

func (d Detected) String() string {
	if d.Generic() {
		return SuffixGeneric
	}
	return SuffixSpecific + "(" + d.specific.Code + ")"
}

// Selector re-selects the active network while an account number is typed.
// The selected value is always one of the networks it was built with.
type Selector struct {
	mu       sync.RWMutex
	networks []*input.Network
	selected Detected
}

// New builds a selector. A single network starts specific, several start
// generic.
func New(networks []*input.Network) (*Selector, error) {
	candidates := make([]*input.Network, 0, len(networks))
	for _, n := range networks {
		if n != nil {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoNetworks
	}

	s := &Selector{networks: candidates}
	if len(candidates) == 1 {
		s.selected = Detected{specific: candidates[0]}
	} else {
		s.selected = s.generic()
	}
	return s, nil
}

// Select evaluates the switch rules against the digits of accountNumber in
// network order. Exactly one match selects that network; no match, several
// matches or an empty input fall back to generic.
func (s *Selector) Select(accountNumber string) Detected {
	detected := s.detect(digits(accountNumber))

	s.mu.Lock()
	s.selected = detected
	s.mu.Unlock()
	return detected
}

// Selected returns the current selection.
func (s *Selector) Selected() Detected {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Network returns the network whose fields should be shown.
func (s *Selector) Network() *input.Network {
	return s.Selected().Network()
}

// Networks returns every candidate network in order.
func (s *Selector) Networks() []*input.Network {
	return append([]*input.Network(nil), s.networks...)
}

// SuffixKey implements input.SuffixResolver.
func (s *Selector) SuffixKey() string {
	if s.Selected().Generic() {
		return SuffixGeneric
	}
	return SuffixSpecific
}

func (s *Selector) detect(number string) Detected {
	if number == "" {
		return s.generic()
	}
	var match *input.Network
	for _, n := range s.networks {
		if !n.SwitchRule.Matches(number) {
			continue
		}
		if match != nil {
			return s.generic()
		}
		match = n
	}
	if match == nil {
		return s.generic()
	}
	return Detected{specific: match}
}

func (s *Selector) generic() Detected {
	return Detected{networks: s.networks}
}

// digits drops the separators users type between digit groups.
func digits(accountNumber string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, accountNumber)
}

var _ input.SuffixResolver = (*Selector)(nil)
