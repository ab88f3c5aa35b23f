package payment

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/goliatone/go-checkout/pkg/failure"
)

var errEmptyPayload = errors.New("payment: payload is empty")

// DecodeListResult decodes a LIST response body. A body that carries the
// error envelope instead of a list result is reported as *failure.ServerError;
// undecodable bodies are reported as *failure.ConfigurationError.
func DecodeListResult(data []byte) (ListResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ListResult{}, &failure.ConfigurationError{Message: "list result", Err: errEmptyPayload}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return ListResult{}, &failure.ConfigurationError{Message: "decode list result", Err: err}
	}
	if _, hasNetworks := probe["networks"]; !hasNetworks {
		if info, ok := DecodeErrorInfo(data); ok {
			return ListResult{}, info.AsError(0)
		}
	}

	var result ListResult
	if err := json.Unmarshal(data, &result); err != nil {
		return ListResult{}, &failure.ConfigurationError{Message: "decode list result", Err: err}
	}
	return result, nil
}

// DecodeErrorInfo reports whether data is an error envelope and returns it.
func DecodeErrorInfo(data []byte) (ErrorInfo, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrorInfo{}, false
	}
	var info ErrorInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return ErrorInfo{}, false
	}
	if info.Interaction.Code == "" || info.ResultInfo == "" {
		return ErrorInfo{}, false
	}
	return info, true
}

// AsError converts the envelope into a *failure.ServerError.
func (e ErrorInfo) AsError(statusCode int) error {
	return &failure.ServerError{
		ResultInfo:        e.ResultInfo,
		InteractionCode:   e.Interaction.Code,
		InteractionReason: e.Interaction.Reason,
		StatusCode:        statusCode,
	}
}

// DecodeTranslations decodes a flat key to string localization file.
func DecodeTranslations(data []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &failure.ConfigurationError{Message: "localization", Err: errEmptyPayload}
	}
	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &failure.ConfigurationError{Message: "decode localization", Err: err}
	}
	return out, nil
}
