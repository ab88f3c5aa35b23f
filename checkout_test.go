package checkout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	checkout "github.com/goliatone/go-checkout"
	"github.com/goliatone/go-checkout/pkg/testsupport"
)

func TestLoadSessionFormsAndSelector(t *testing.T) {
	srv, _ := testsupport.StartServer(t)

	s, err := checkout.LoadSession(testsupport.Context(), testsupport.ListURL(srv, testsupport.ExampleList))
	if err != nil {
		t.Fatalf("load session: %v", err)
	}

	forms := checkout.Forms(s)
	codes := make([]string, 0, len(forms))
	for _, f := range forms {
		codes = append(codes, f.Code)
	}
	if diff := cmp.Diff([]string{"VISA", "DINERS", "MASTERCARD", "SEPADD"}, codes); diff != "" {
		t.Fatalf("form codes mismatch (-want +got):\n%s", diff)
	}

	selector, detach, err := checkout.NewSelector(forms)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	defer detach()

	cvv, ok := forms[0].Field("verificationCode")
	if !ok {
		t.Fatal("VISA form has a verification code")
	}
	if got := cvv.Placeholder(); got != "CVV" {
		t.Fatalf("generic placeholder = %q", got)
	}

	detected := selector.Select("4111 1111")
	if detected.Generic() || detected.Network().Code != "VISA" {
		t.Fatalf("expected VISA, got %s", detected)
	}
	if got := cvv.Placeholder(); got != "3 digits on the back" {
		t.Fatalf("specific placeholder = %q", got)
	}
}

func TestPresentLoadFailure(t *testing.T) {
	srv, _ := testsupport.StartServer(t)

	s, err := checkout.LoadSession(testsupport.Context(), testsupport.ListURL(srv, "abort"))
	if err == nil {
		t.Fatal("expected the aborted list to fail")
	}

	alert := checkout.Present(err, s)
	want := "The payment could not be processed. Please choose another method."
	if alert.Message != want {
		t.Fatalf("alert message = %q, want %q", alert.Message, want)
	}
	if alert.Retry {
		t.Fatal("aborted sessions are not retried")
	}
}

func TestFormsNilSession(t *testing.T) {
	if forms := checkout.Forms(nil); forms != nil {
		t.Fatalf("expected nil, got %v", forms)
	}
}
