package grading

import "errors"

var (
	// ErrStartFailed is returned internally when the vendor rejects the start request
	ErrStartFailed = errors.New("failed to start grading analysis")
	// ErrPollBudgetExhausted is returned internally when the vendor never reached READY
	ErrPollBudgetExhausted = errors.New("grading analysis polling budget exhausted")
	// ErrUnexpectedStatus is returned internally on a non-200 vendor
	// response or a vendor analysis that finished in an error state
	ErrUnexpectedStatus = errors.New("unexpected grading vendor status")
)
