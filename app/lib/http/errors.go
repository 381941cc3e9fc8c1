package http

import (
	"errors"
)

// ProtocolError is an error that maps onto an HTTP status. Every failure the
// pipeline can recover from by answering the client is one of these; anything
// else is treated as a 500.
type ProtocolError struct {
	Status  Status
	Message string
}

func NewProtocolError(status Status, message string) error {
	return &ProtocolError{
		Status:  status,
		Message: message,
	}
}

func (e *ProtocolError) Error() string {
	return e.Message
}

var (
	ErrIncompleteRequest           = NewProtocolError(Status400BadRequest, "stream ended before the header block terminator")
	ErrIncompleteBody              = NewProtocolError(Status400BadRequest, "body is shorter than the declared content-length")
	ErrTrailingData                = NewProtocolError(Status400BadRequest, "bytes remain after the declared content-length")
	ErrUnsupportedTransferEncoding = NewProtocolError(Status400BadRequest, "transfer-encoding is not supported")
	ErrMalformedRequestLine        = NewProtocolError(Status400BadRequest, "malformed request line")
	ErrMalformedHeaderLine         = NewProtocolError(Status400BadRequest, "malformed header line")

	ErrPathNotFound = NewProtocolError(Status404NotFound, "no handler for path")

	ErrUnsupportedContentType  = NewProtocolError(Status500InternalServerError, "content-type is not supported")
	ErrInternalProcessingError = NewProtocolError(Status500InternalServerError, "internal processing error")
)

// StatusFor resolves the response status an error maps onto. Errors that
// don't carry a ProtocolError anywhere in their chain are a 500.
func StatusFor(err error) Status {
	var perr *ProtocolError
	if errors.As(err, &perr) {
		return perr.Status
	}

	return Status500InternalServerError
}
