package payment

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-checkout/pkg/failure"
)

const listResultSchemaName = "ListResult"

//go:embed contract/list_result.yaml
var listResultContract []byte

var (
	contractOnce sync.Once
	contract     *Contract
	contractErr  error
)

// Contract checks raw list result payloads against the bundled OpenAPI
// description before they are decoded into Go values.
type Contract struct {
	schema *openapi3.Schema
}

// DefaultContract returns the process-wide contract parsed from the embedded
// OpenAPI document.
func DefaultContract() (*Contract, error) {
	contractOnce.Do(func() {
		contract, contractErr = NewContract(context.Background(), listResultContract)
	})
	return contract, contractErr
}

// NewContract parses an OpenAPI document that defines a ListResult schema.
func NewContract(ctx context.Context, document []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("payment contract: load document: %w", err)
	}

	ref := doc.Components.Schemas[listResultSchemaName]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("payment contract: schema %q not defined", listResultSchemaName)
	}
	return &Contract{schema: ref.Value}, nil
}

// Check validates raw against the ListResult schema. Violations are reported
// as *failure.ConfigurationError because they indicate a malformed response.
func (c *Contract) Check(raw []byte) error {
	if c == nil || c.schema == nil {
		return errors.New("payment contract: not initialised")
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return &failure.ConfigurationError{Message: "list result is not valid JSON", Err: err}
	}
	if err := c.schema.VisitJSON(value); err != nil {
		return &failure.ConfigurationError{Message: "list result violates contract", Err: err}
	}
	return nil
}
