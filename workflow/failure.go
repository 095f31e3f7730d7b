package workflow

import (
	"errors"
	"fmt"
)

// Kind tags a workflow failure with the category a boundary needs to map it
// to a caller-visible outcome. The zero value means "not a workflow failure".
type Kind uint8

const (
	// KindUnknown is the zero Kind; KindOf returns it for errors that did
	// not originate in a workflow step.
	KindUnknown Kind = iota

	// KindNotFound reports that a lookup step found no aggregate.
	KindNotFound

	// KindInvalidCredential reports a credential that did not match.
	KindInvalidCredential

	// KindConflict reports a uniqueness or association violation.
	KindConflict

	// KindValidation reports input rejected by a validating constructor
	// or an input-validation step.
	KindValidation

	// KindInfrastructure reports a collaborator malfunction (store,
	// hasher, token issuer) as opposed to a domain outcome.
	KindInfrastructure
)

// String returns the stable lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

// Failure is the single error shape steps produce. Process is empty until
// Run wraps the failure with the name of the workflow that produced it.
type Failure struct {
	Kind    Kind
	Process string
	Err     error
}

// Error renders "process failed: cause" once wrapped, or just the cause
// while the failure is still inside the pipeline.
func (f *Failure) Error() string {
	if f.Process != "" {
		return f.Process + " failed: " + f.Err.Error()
	}
	return f.Err.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (f *Failure) Unwrap() error { return f.Err }

// Fail builds a Failure of the given kind around cause.
func Fail(kind Kind, cause error) *Failure {
	return &Failure{Kind: kind, Err: cause}
}

// Failf builds a Failure of the given kind around a formatted message.
func Failf(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// NotFound tags cause as a missing-aggregate outcome.
func NotFound(cause error) *Failure { return Fail(KindNotFound, cause) }

// InvalidCredential tags cause as a credential mismatch.
func InvalidCredential(cause error) *Failure { return Fail(KindInvalidCredential, cause) }

// Conflict tags cause as a uniqueness violation.
func Conflict(cause error) *Failure { return Fail(KindConflict, cause) }

// Invalid tags cause as rejected input.
func Invalid(cause error) *Failure { return Fail(KindValidation, cause) }

// Infra tags cause as a collaborator malfunction.
func Infra(cause error) *Failure { return Fail(KindInfrastructure, cause) }

// KindOf reports the Kind of the innermost Failure in err's chain, or
// KindUnknown when err did not come from a workflow step.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}
