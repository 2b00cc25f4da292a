package queue

import (
	"github.com/adlaunch/adlaunch-api/internal/facebook"
	"github.com/pkg/errors"
)

// ErrorKind tags a failed submission so callers can branch on the failure
// class instead of pattern-matching message text.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAccount    ErrorKind = "account"
	KindIntegrity  ErrorKind = "integrity"
)

// RemoteKind names the remote stage that rejected the request.
func RemoteKind(stage string) ErrorKind {
	return ErrorKind("remote:" + stage)
}

// SubmitError pairs an error kind with the underlying human-readable error.
type SubmitError struct {
	Kind ErrorKind
	Err  error
}

func (e *SubmitError) Error() string {
	return e.Err.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

func submitErrorf(kind ErrorKind, format string, args ...interface{}) *SubmitError {
	return &SubmitError{Kind: kind, Err: errors.Errorf(format, args...)}
}

// Classify derives the error kind for a worker failure. Remote platform
// errors carry their stage; anything untagged is treated as an integrity
// problem since the worker wraps every expected failure itself.
func Classify(err error) ErrorKind {
	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		return submitErr.Kind
	}
	var apiErr *facebook.APIError
	if errors.As(err, &apiErr) {
		return RemoteKind(apiErr.Stage)
	}
	return KindIntegrity
}
