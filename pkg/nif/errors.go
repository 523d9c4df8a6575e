package nif

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/header"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
)

// Sentinel errors, re-exported so callers only need this package.
var (
	ErrInvalidMagic       = header.ErrInvalidMagic
	ErrUnsupportedVersion = header.ErrUnsupportedVersion
	ErrUnknownBlock       = blocks.ErrUnknownBlock
	ErrTruncated          = stream.ErrTruncated
	ErrNoRoot             = errors.New("file has no root node")
)

// LoadStatus is the small status code a failed load reports.
type LoadStatus int

// Load status codes
const (
	StatusOK            LoadStatus = 0
	StatusInvalidHeader LoadStatus = 1
	StatusUnknownBlock  LoadStatus = 2
	StatusTruncated     LoadStatus = 3
)

func (s LoadStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidHeader:
		return "invalid header"
	case StatusUnknownBlock:
		return "unknown block"
	case StatusTruncated:
		return "truncated"
	}
	return fmt.Sprintf("status %d", int(s))
}

// LoadError is returned by Load when a file cannot be read.
type LoadError struct {
	Status  LoadStatus
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// newLoadError picks the status from the cause.
func newLoadError(message string, cause error) *LoadError {
	status := StatusTruncated
	switch {
	case errors.Is(cause, ErrInvalidMagic), errors.Is(cause, ErrUnsupportedVersion):
		status = StatusInvalidHeader
	case errors.Is(cause, ErrUnknownBlock):
		status = StatusUnknownBlock
	}
	return &LoadError{Status: status, Message: message, Cause: cause}
}

// StatusOf returns the load status carried by err, StatusOK for nil and
// StatusTruncated for any other error.
func StatusOf(err error) LoadStatus {
	if err == nil {
		return StatusOK
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.Status
	}
	return StatusTruncated
}
