package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports every missing or malformed required field, not just
// the first.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// ConflictError reports a duplicate account or a duplicate active
// application.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError reports that a referenced resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// InvalidTransitionError reports a state change not permitted from the
// current status. Both ends are carried for debuggability.
type InvalidTransitionError struct {
	From ApplicationStatus
	To   ApplicationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition application from %s to %s", e.From, e.To)
}

// ExpiredError reports a terminal access-code condition. Used distinguishes
// "already used" from true time-expiry so the caller can message
// appropriately; neither is retryable.
type ExpiredError struct {
	Used bool
}

func (e *ExpiredError) Error() string {
	if e.Used {
		return "access code already used"
	}
	return "access code has expired"
}

// MismatchError reports an invalid code/email pairing. The message is
// deliberately generic so valid codes cannot be enumerated.
type MismatchError struct{}

func (e *MismatchError) Error() string {
	return "invalid code or email"
}
