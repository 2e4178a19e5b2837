// Package fault provides the structured error taxonomy for the generation
// loop. Failing the quality threshold is never a fault; it is the loop's
// ordinary business outcome.
package fault

import "fmt"

// Code identifies the failure category.
type Code string

const (
	CodeProviderAuth     Code = "PROVIDER_AUTH"
	CodeQuotaExceeded    Code = "QUOTA_EXCEEDED"
	CodeEmptyResult      Code = "EMPTY_RESULT"
	CodeDownloadFailed   Code = "DOWNLOAD_FAILED"
	CodeFrameExtraction  Code = "FRAME_EXTRACTION"
	CodeMalformedOutput  Code = "MALFORMED_OUTPUT"
	CodePersistence      Code = "PERSISTENCE"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeProviderUpstream Code = "PROVIDER_UPSTREAM"
)

// Error is a structured error with a code and an underlying cause. All
// faults propagate unmodified to the caller; the loop never retries or
// swallows them.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a fault with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a fault wrapping an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the fault code, or "" for plain errors.
func CodeOf(err error) Code {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
