package testsupport

import (
	"bytes"
	"context"
	"io/fs"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-checkout/internal/mockserver"
	"github.com/goliatone/go-checkout/pkg/payment"
)

// ExampleList is the fixture holding five applicable networks, one of them
// unsupported, and two registered accounts.
const ExampleList = "example"

// StartServer runs the fixture server for the lifetime of the test.
func StartServer(t testing.TB, options ...mockserver.Option) (*httptest.Server, *mockserver.Server) {
	t.Helper()

	handler := mockserver.New(options...)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, handler
}

// ListURL returns the list result URL of fixture id on srv.
func ListURL(srv *httptest.Server, id string) string {
	return srv.URL + "/lists/" + id
}

// MustReadFixture reads a file from the embedded fixture tree, e.g.
// "lang/en_US/checkout.json".
func MustReadFixture(t testing.TB, name string) []byte {
	t.Helper()

	data, err := fs.ReadFile(mockserver.Fixtures(), name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// MustLoadListResult decodes list fixture id with links rooted at base.
func MustLoadListResult(t testing.TB, id, base string) payment.ListResult {
	t.Helper()

	data := MustReadFixture(t, "lists/"+id+".json")
	data = bytes.ReplaceAll(data, []byte(mockserver.BasePlaceholder), []byte(base))
	result, err := payment.DecodeListResult(data)
	if err != nil {
		t.Fatalf("decode list fixture %s: %v", id, err)
	}
	return result
}

// MustLoadTranslations decodes a localization fixture.
func MustLoadTranslations(t testing.TB, name string) map[string]string {
	t.Helper()

	values, err := payment.DecodeTranslations(MustReadFixture(t, name))
	if err != nil {
		t.Fatalf("decode translations %s: %v", name, err)
	}
	return values
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
