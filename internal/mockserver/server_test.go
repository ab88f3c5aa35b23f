package mockserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func get(t *testing.T, srv *httptest.Server, path string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp, body
}

func TestServer_ListSubstitutesBase(t *testing.T) {
	srv := httptest.NewServer(New())
	defer srv.Close()

	resp, body := get(t, srv, "/lists/example", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if bytes.Contains(body, []byte(BasePlaceholder)) {
		t.Fatal("placeholder left in body")
	}
	if !bytes.Contains(body, []byte(srv.URL+"/lang/en_US/DINERS.json")) {
		t.Fatal("links must point back at the server")
	}
}

func TestServer_UnknownListIsEnvelope(t *testing.T) {
	srv := httptest.NewServer(New())
	defer srv.Close()

	resp, body := get(t, srv, "/lists/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var envelope struct {
		ResultInfo  string `json:"resultInfo"`
		Interaction struct {
			Code   string `json:"code"`
			Reason string `json:"reason"`
		} `json:"interaction"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Interaction.Code != "ABORT" || envelope.Interaction.Reason != "INVALID_REQUEST" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
}

func TestServer_InjectedStatus(t *testing.T) {
	handler := New(WithStatus("/lang/en_US/checkout.json", http.StatusBadGateway))
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, _ := get(t, srv, "/lang/en_US/checkout.json", nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if handler.Hits("/lang/en_US/checkout.json") != 1 {
		t.Fatalf("hits = %d", handler.Hits("/lang/en_US/checkout.json"))
	}
}

func TestServer_Gzip(t *testing.T) {
	srv := httptest.NewServer(New(WithGzip(true)))
	defer srv.Close()

	resp, body := get(t, srv, "/lang/en_US/DINERS.json", http.Header{"Accept-Encoding": {"gzip"}})
	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Fatal("expected gzip encoding")
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	plain, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("gunzip: %v", err)
	}
	if !strings.Contains(string(plain), "Diners Club Localized") {
		t.Fatalf("unexpected body %s", plain)
	}

	resp, body = get(t, srv, "/lang/en_US/DINERS.json", nil)
	if resp.Header.Get("Content-Encoding") != "" || !strings.Contains(string(body), "Diners") {
		t.Fatal("clients without gzip get plain bodies")
	}
}

func TestServer_Logo(t *testing.T) {
	srv := httptest.NewServer(New())
	defer srv.Close()

	resp, body := get(t, srv, "/logos/visa.svg", nil)
	if resp.Header.Get("Content-Type") != "image/svg+xml" || !bytes.HasPrefix(body, []byte("<svg")) {
		t.Fatalf("unexpected logo response %s", resp.Header.Get("Content-Type"))
	}
	if resp, _ := get(t, srv, "/logos/missing.svg", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing logo status = %d", resp.StatusCode)
	}
}
