// Package smartswitch selects the active payment network while the user types
// an account number. Each network's switch rule is evaluated against the
// digits entered so far; exactly one match narrows the selection to that
// network, anything else shows every candidate.
//
// Callers compare the new selection with the previous one using
// Detected.Equal and only swap the visible field set when they differ.
package smartswitch
