package payment

// Interaction codes returned by the backend.
const (
	InteractionProceed         = "PROCEED"
	InteractionAbort           = "ABORT"
	InteractionTryOtherNetwork = "TRY_OTHER_NETWORK"
	InteractionTryOtherAccount = "TRY_OTHER_ACCOUNT"
	InteractionRetry           = "RETRY"
	InteractionReload          = "RELOAD"
	InteractionVerify          = "VERIFY"
)

// Interaction reasons referenced by the SDK itself.
const (
	ReasonOK                   = "OK"
	ReasonCommunicationFailure = "COMMUNICATION_FAILURE"
	ReasonClientsideError      = "CLIENTSIDE_ERROR"
)

// Link names used on networks and accounts.
const (
	LinkSelf      = "self"
	LinkLanguage  = "lang"
	LinkLogo      = "logo"
	LinkOperation = "operation"
)

// Operation types a list session can be created for.
const (
	OperationCharge = "CHARGE"
	OperationPreset = "PRESET"
	OperationPayout = "PAYOUT"
	OperationUpdate = "UPDATE"
)

// Interaction is the server supplied outcome of a session or operation.
type Interaction struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// ListResult describes a payment session as returned by the LIST endpoint.
type ListResult struct {
	ResultInfo    string                `json:"resultInfo,omitempty"`
	OperationType string                `json:"operationType,omitempty"`
	Interaction   Interaction           `json:"interaction"`
	Links         map[string]string     `json:"links,omitempty"`
	Networks      Networks              `json:"networks"`
	Accounts      []AccountRegistration `json:"accounts,omitempty"`
}

// Networks groups the applicable networks of a list result.
type Networks struct {
	Applicable []ApplicableNetwork `json:"applicable"`
}

// ApplicableNetwork is a payment method variant usable in the current session,
// together with its input element schema. Values are treated as immutable once
// decoded.
type ApplicableNetwork struct {
	Code                   string            `json:"code"`
	Label                  string            `json:"label"`
	Method                 string            `json:"method"`
	Grouping               string            `json:"grouping,omitempty"`
	Registration           string            `json:"registration,omitempty"`
	Recurrence             string            `json:"recurrence,omitempty"`
	Redirect               bool              `json:"redirect"`
	Button                 string            `json:"button,omitempty"`
	Selected               bool              `json:"selected,omitempty"`
	EmptyForm              bool              `json:"emptyForm,omitempty"`
	IFrameHeight           int               `json:"iFrameHeight,omitempty"`
	LocalizedInputElements []InputElement    `json:"localizedInputElements,omitempty"`
	Links                  map[string]string `json:"links,omitempty"`
}

// RegistrationRequirement parses the registration flag.
func (n ApplicableNetwork) RegistrationRequirement() Requirement {
	return ParseRequirement(n.Registration)
}

// RecurrenceRequirement parses the recurrence flag.
func (n ApplicableNetwork) RecurrenceRequirement() Requirement {
	return ParseRequirement(n.Recurrence)
}

// Link returns the named link or an empty string.
func (n ApplicableNetwork) Link(name string) string {
	return link(n.Links, name)
}

// AccountRegistration is a previously saved account available for reuse.
type AccountRegistration struct {
	Code                   string            `json:"code"`
	Label                  string            `json:"label,omitempty"`
	Method                 string            `json:"method,omitempty"`
	Button                 string            `json:"button,omitempty"`
	Selected               bool              `json:"selected,omitempty"`
	MaskedAccount          MaskedAccount     `json:"maskedAccount"`
	LocalizedInputElements []InputElement    `json:"localizedInputElements,omitempty"`
	Links                  map[string]string `json:"links,omitempty"`
}

// Link returns the named link or an empty string.
func (a AccountRegistration) Link(name string) string {
	return link(a.Links, name)
}

// MaskedAccount holds the display data of a registered account.
type MaskedAccount struct {
	DisplayLabel string `json:"displayLabel,omitempty"`
	HolderName   string `json:"holderName,omitempty"`
	Number       string `json:"number,omitempty"`
	IBAN         string `json:"iban,omitempty"`
	ExpiryMonth  int    `json:"expiryMonth,omitempty"`
	ExpiryYear   int    `json:"expiryYear,omitempty"`
}

// InputElementType enumerates the input restrictions a client should enforce.
type InputElementType string

const (
	InputTypeString   InputElementType = "string"
	InputTypeNumeric  InputElementType = "numeric"
	InputTypeInteger  InputElementType = "integer"
	InputTypeSelect   InputElementType = "select"
	InputTypeCheckbox InputElementType = "checkbox"
)

// InputElement describes a single form input of a network.
type InputElement struct {
	Name    string           `json:"name"`
	Type    InputElementType `json:"type"`
	Options []SelectOption   `json:"options,omitempty"`
	// LabelKey overrides the default "account.{name}.label" translation key.
	LabelKey string `json:"label,omitempty"`
}

// SelectOption is one choice of a select element.
type SelectOption struct {
	Value    string `json:"value"`
	Label    string `json:"label,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// ErrorInfo is the envelope the backend returns when a request fails.
type ErrorInfo struct {
	ResultInfo  string      `json:"resultInfo"`
	Interaction Interaction `json:"interaction"`
}

func link(links map[string]string, name string) string {
	if links == nil {
		return ""
	}
	return links[name]
}

// OperationResult is the outcome of an operation, either returned by the
// backend or reconstructed from a redirect callback.
type OperationResult struct {
	ResultInfo  string      `json:"resultInfo"`
	Interaction Interaction `json:"interaction"`
	Redirect    *Redirect   `json:"redirect,omitempty"`
}

// Redirect instructs the client to continue the operation at another URL.
type Redirect struct {
	URL        string      `json:"url"`
	Method     string      `json:"method"`
	Type       string      `json:"type,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// Parameter is a name/value pair attached to a redirect.
type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
