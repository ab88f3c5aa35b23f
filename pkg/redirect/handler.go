package redirect

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"sync"

	"github.com/goliatone/go-checkout/pkg/failure"
	"github.com/goliatone/go-checkout/pkg/payment"
)

// Query parameters carried by the callback URL.
const (
	ParamInteractionCode   = "interactionCode"
	ParamInteractionReason = "interactionReason"
)

// ErrAlreadyDelivered is returned when a handler receives a second result.
var ErrAlreadyDelivered = errors.New("redirect: result already delivered")

// Result is the payment outcome reported after a client-side redirect.
type Result struct {
	Interaction     payment.Interaction
	OperationResult *payment.OperationResult
	// Err is set when the callback could not be turned into an operation
	// result.
	Err error
}

// Handler hands exactly one redirect result from a producer (the URL
// callback or a failure notification) to a single consumer.
type Handler struct {
	results chan Result
	once    sync.Once
}

// NewHandler returns a handler ready to receive one result.
func NewHandler() *Handler {
	return &Handler{results: make(chan Result, 1)}
}

// Deliver parses a callback URL and publishes its result. The interaction is
// read from the interactionCode and interactionReason query parameters; every
// other parameter is kept on the reconstructed redirect. A URL without both
// parameters yields VERIFY/COMMUNICATION_FAILURE and an internal error.
func (h *Handler) Deliver(rawURL string) error {
	return h.publish(Parse(rawURL))
}

// Fail publishes the result used when the redirect never came back. PRESET
// and UPDATE sessions abort; CHARGE and PAYOUT sessions must be verified.
func (h *Handler) Fail(operationType string) error {
	code := payment.InteractionVerify
	switch operationType {
	case payment.OperationPreset, payment.OperationUpdate:
		code = payment.InteractionAbort
	}
	interaction := payment.Interaction{Code: code, Reason: payment.ReasonCommunicationFailure}
	return h.publish(Result{
		Interaction: interaction,
		OperationResult: &payment.OperationResult{
			ResultInfo:  "Missing OperationResult after client-side redirect",
			Interaction: interaction,
		},
	})
}

// Await blocks until a result is delivered or ctx is done. The returned error
// is the context error or the result's own error.
func (h *Handler) Await(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case result := <-h.results:
		return result, result.Err
	}
}

func (h *Handler) publish(result Result) error {
	delivered := false
	h.once.Do(func() {
		h.results <- result
		delivered = true
	})
	if !delivered {
		return ErrAlreadyDelivered
	}
	return nil
}

// Parse converts a callback URL into a result without publishing it.
func Parse(rawURL string) Result {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return communicationFailure(rawURL, err)
	}
	query := parsed.Query()
	code, reason := query.Get(ParamInteractionCode), query.Get(ParamInteractionReason)
	if code == "" || reason == "" {
		return communicationFailure(rawURL, nil)
	}
	query.Del(ParamInteractionCode)
	query.Del(ParamInteractionReason)

	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)
	parameters := make([]payment.Parameter, 0, len(names))
	for _, name := range names {
		parameters = append(parameters, payment.Parameter{Name: name, Value: query.Get(name)})
	}

	interaction := payment.Interaction{Code: code, Reason: reason}
	return Result{
		Interaction: interaction,
		OperationResult: &payment.OperationResult{
			ResultInfo:  "OperationResult received from the mobile-redirect webapp",
			Interaction: interaction,
			Redirect: &payment.Redirect{
				URL:        rawURL,
				Method:     MethodGet,
				Parameters: parameters,
			},
		},
	}
}

func communicationFailure(rawURL string, cause error) Result {
	return Result{
		Interaction: payment.Interaction{Code: payment.InteractionVerify, Reason: payment.ReasonCommunicationFailure},
		Err: &failure.InternalError{
			Message: "callback url does not contain interaction code or reason: " + rawURL,
			Err:     cause,
		},
	}
}
