package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned on login with an unknown email or a wrong
// password. The two cases are indistinguishable to the caller on purpose.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError represents malformed client input. No storage or database
// write happens once one of these is raised.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UploadError wraps a blob store failure, including an upload timing out.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "image upload failed: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
