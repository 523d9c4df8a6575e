package app

import (
	"errors"
	"fmt"
	"os"
	"slices"
)

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeFileAccess   = "FILE_ACCESS"
	ErrCodeLoad         = "LOAD_FAILED"
	ErrCodeSave         = "SAVE_FAILED"
	ErrCodeMismatch     = "ROUND_TRIP_MISMATCH"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first CommonError in err's chain, or an
// empty string.
func CodeOf(err error) string {
	var ce *CommonError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// OutputFormats lists the formats FormatOutput functions accept.
var OutputFormats = []string{"table", "json", "yaml"}

// ValidateOutputFormat rejects formats outside OutputFormats.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return NewError(ErrCodeInvalidInput, fmt.Sprintf("unsupported output format: %s", format), nil)
	}
	return nil
}

// ValidateInputFile checks that path names a readable regular file.
func ValidateInputFile(path string) error {
	if path == "" {
		return NewError(ErrCodeInvalidInput, "input path is required", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return NewError(ErrCodeFileAccess, "cannot access input file", err)
	}
	if info.IsDir() {
		return NewError(ErrCodeInvalidInput, fmt.Sprintf("%s is a directory", path), nil)
	}
	return nil
}
