package payment

import "strings"

// Requirement describes how registration or recurrence is offered for a
// network.
type Requirement string

const (
	RequirementAbsent              Requirement = ""
	RequirementNone                Requirement = "NONE"
	RequirementOptional            Requirement = "OPTIONAL"
	RequirementOptionalPreselected Requirement = "OPTIONAL_PRESELECTED"
	RequirementForced              Requirement = "FORCED"
	RequirementForcedDisplayed     Requirement = "FORCED_DISPLAYED"
)

// ParseRequirement maps the raw flag to a Requirement. Unknown values map to
// RequirementAbsent.
func ParseRequirement(raw string) Requirement {
	switch req := Requirement(strings.ToUpper(strings.TrimSpace(raw))); req {
	case RequirementNone, RequirementOptional, RequirementOptionalPreselected,
		RequirementForced, RequirementForcedDisplayed:
		return req
	default:
		return RequirementAbsent
	}
}
