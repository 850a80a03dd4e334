// internal/core/domain/errors.go
package domain

import (
	"fmt"

	"netsql/internal/platform/errors"
)

// Error kinds. Callers match them with errors.Is.
var (
	// Query errors
	ErrMalformedQuery = errors.New("malformed query")

	// Catalog errors
	ErrUnknownSource  = errors.New("unknown data source")
	ErrUnknownCommand = errors.New("no extraction template defined for command")
	ErrInvalidCatalog = errors.New("invalid catalog")

	// Session errors
	ErrSession         = errors.New("session failed")
	ErrSessionAuth     = errors.New("authentication failed")
	ErrSessionTimeout  = errors.New("session timed out")
	ErrSessionProtocol = errors.New("session protocol negotiation failed")

	// Processing errors
	ErrExtraction     = errors.New("extraction failed")
	ErrTableOperation = errors.New("table operation failed")

	// Host input errors
	ErrNoHosts = errors.New("no valid host addresses")
)

// PipelineError ties an error kind to the host and command it happened on.
type PipelineError struct {
	Kind    error
	Host    string
	Command string
	Err     error
}

func (e *PipelineError) Error() string {
	msg := e.Kind.Error()
	switch {
	case e.Host != "" && e.Command != "":
		msg = fmt.Sprintf("%s [host=%s command=%q]", msg, e.Host, e.Command)
	case e.Host != "":
		msg = fmt.Sprintf("%s [host=%s]", msg, e.Host)
	case e.Command != "":
		msg = fmt.Sprintf("%s [command=%q]", msg, e.Command)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *PipelineError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewPipelineError builds a PipelineError. A nil kind defaults to ErrSession.
func NewPipelineError(kind error, host, command string, cause error) *PipelineError {
	if kind == nil {
		kind = ErrSession
	}
	return &PipelineError{Kind: kind, Host: host, Command: command, Err: cause}
}

// IsFatal reports whether err must abort the whole run instead of one host or command.
func IsFatal(err error) bool {
	return errors.IsAny(err, ErrSessionAuth, ErrUnknownSource, ErrTableOperation, ErrInvalidCatalog, ErrMalformedQuery)
}

// IsSessionError reports whether err belongs to the session family.
func IsSessionError(err error) bool {
	return errors.IsAny(err, ErrSession, ErrSessionAuth, ErrSessionTimeout, ErrSessionProtocol)
}
