package localization

import (
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Translator resolves translation keys. Implementations must be safe for
// concurrent reads.
type Translator interface {
	Translate(key string) (string, bool)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key string) (string, bool)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(key string) (string, bool) {
	return fn(key)
}

// Bundle is an immutable key to string snapshot. The zero value and a nil
// *Bundle are empty bundles.
type Bundle struct {
	values map[string]string
}

// NewBundle copies values into a new bundle, stripping any markup the server
// may have embedded in the strings.
func NewBundle(values map[string]string) *Bundle {
	out := make(map[string]string, len(values))
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = sanitize(value)
	}
	return &Bundle{values: out}
}

// Translate implements Translator.
func (b *Bundle) Translate(key string) (string, bool) {
	if b == nil {
		return "", false
	}
	value, ok := b.values[key]
	return value, ok
}

// Len reports the number of keys in the bundle.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.values)
}

// Keys returns the bundle keys in lexical order.
func (b *Bundle) Keys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, 0, len(b.values))
	for key := range b.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a new bundle holding b with overlay applied on top. Neither
// input is modified.
func (b *Bundle) Merge(overlay *Bundle) *Bundle {
	size := b.Len() + overlay.Len()
	out := make(map[string]string, size)
	if b != nil {
		for key, value := range b.values {
			out[key] = value
		}
	}
	if overlay != nil {
		for key, value := range overlay.values {
			out[key] = value
		}
	}
	return &Bundle{values: out}
}

// Text resolves key through t, then the built-in strings, then returns the key
// itself.
func Text(t Translator, key string) string {
	if t != nil {
		if value, ok := t.Translate(key); ok {
			return value
		}
	}
	if value, ok := Builtin(key); ok {
		return value
	}
	return key
}

// Lookup resolves key through t and the built-in strings, reporting whether a
// value exists.
func Lookup(t Translator, key string) (string, bool) {
	if t != nil {
		if value, ok := t.Translate(key); ok {
			return value, true
		}
	}
	return Builtin(key)
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func sanitize(raw string) string {
	if !strings.ContainsAny(raw, "<>") {
		return raw
	}
	cleaned := textSanitizer().Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
