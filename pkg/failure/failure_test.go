package failure_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-checkout/pkg/failure"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want failure.Kind
	}{
		{name: "nil", err: nil, want: failure.KindUnknown},
		{name: "plain", err: errors.New("boom"), want: failure.KindUnknown},
		{name: "transport", err: &failure.TransportError{URL: "https://x", Err: context.DeadlineExceeded}, want: failure.KindTransport},
		{name: "wrapped transport", err: fmt.Errorf("session: fetch: %w", &failure.TransportError{URL: "https://x"}), want: failure.KindTransport},
		{name: "server", err: &failure.ServerError{InteractionCode: "ABORT", InteractionReason: "EXPIRED_SESSION"}, want: failure.KindServer},
		{name: "user facing", err: &failure.UserFacingError{Message: "Session expired"}, want: failure.KindUserFacing},
		{name: "configuration", err: failure.Configuration("missing language link"), want: failure.KindConfiguration},
		{name: "internal", err: failure.Internal("keySuffixer is not set"), want: failure.KindInternal},
		{name: "validation", err: &failure.ValidationError{Field: "number", Kind: failure.InvalidValue}, want: failure.KindValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := failure.KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRetryableOnlyForTransport(t *testing.T) {
	if !failure.Retryable(&failure.TransportError{URL: "https://x"}) {
		t.Fatalf("expected transport errors to be retryable")
	}
	for _, err := range []error{
		&failure.ServerError{},
		&failure.UserFacingError{Message: "x"},
		failure.Configuration("x"),
		failure.Internal("x"),
		errors.New("x"),
	} {
		if failure.Retryable(err) {
			t.Fatalf("expected %T not to be retryable", err)
		}
	}
}

func TestTransportErrorUnwraps(t *testing.T) {
	err := &failure.TransportError{Method: "GET", URL: "https://example.com/lists/1", StatusCode: 502, Err: context.Canceled}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
	want := "transport: GET https://example.com/lists/1 (status 502): context canceled"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestServerErrorLocalizationKey(t *testing.T) {
	err := &failure.ServerError{InteractionCode: "ABORT", InteractionReason: "EXPIRED_SESSION"}
	if got := err.LocalizationKey(); got != "ABORT.EXPIRED_SESSION" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
}
