package model

import "errors"

// Failure sentinels. Callers match them with errors.Is.
var (
	// ErrSignatureMismatch means the artifact does not carry the expected protection.
	ErrSignatureMismatch = errors.New("signature mismatch")
	// ErrPartialResolution means a non-empty catalog produced no resolutions.
	ErrPartialResolution = errors.New("partial resolution")
	// ErrEvaluationFailure means the resolution stage could not run.
	ErrEvaluationFailure = errors.New("evaluation failure")
	// ErrBootstrapExecution means the reconstructed initializer threw.
	ErrBootstrapExecution = errors.New("bootstrap execution failed")
	// ErrFragmentEvaluation means a single fragment threw or did not resolve.
	ErrFragmentEvaluation = errors.New("fragment evaluation failed")
	// ErrWriteFailure means the output sink rejected the result.
	ErrWriteFailure = errors.New("write failure")
)

// FailureKind names the dominant failure carried by an error.
type FailureKind string

// Available FailureKind values.
const (
	FailureNone              FailureKind = ""
	FailureSignatureMismatch FailureKind = "signature_mismatch"
	FailurePartialResolution FailureKind = "partial_resolution"
	FailureEvaluation        FailureKind = "evaluation_failure"
	FailureWrite             FailureKind = "write_failure"
	FailureUnknown           FailureKind = "unknown"
)

// Classify maps an error to its FailureKind.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrSignatureMismatch):
		return FailureSignatureMismatch
	case errors.Is(err, ErrEvaluationFailure), errors.Is(err, ErrBootstrapExecution):
		return FailureEvaluation
	case errors.Is(err, ErrPartialResolution):
		return FailurePartialResolution
	case errors.Is(err, ErrWriteFailure):
		return FailureWrite
	default:
		return FailureUnknown
	}
}

// Fatal reports whether the failure should make the run exit non-zero.
func (k FailureKind) Fatal() bool {
	return k != FailureNone && k != FailurePartialResolution
}
