package localization

import (
	"sync"

	"github.com/goliatone/go-checkout/pkg/failure"
)

// Shared holds the session wide bundle downloaded once per load. It is
// written once and read-only afterwards.
type Shared struct {
	mu     sync.RWMutex
	bundle *Bundle
}

// NewShared returns an empty provider.
func NewShared() *Shared {
	return &Shared{}
}

// Populate stores b. A second call fails with *failure.InternalError and
// leaves the first bundle in place.
func (s *Shared) Populate(b *Bundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bundle != nil {
		return failure.Internal("shared localization already populated")
	}
	if b == nil {
		b = &Bundle{}
	}
	s.bundle = b
	return nil
}

// Bundle returns the stored bundle, or nil before Populate.
func (s *Shared) Bundle() *Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// Translate implements Translator.
func (s *Shared) Translate(key string) (string, bool) {
	return s.Bundle().Translate(key)
}
