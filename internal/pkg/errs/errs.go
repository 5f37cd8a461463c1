/*
Package errs defines the application error type and the business error codes.

CustomError carries a stable business code, a client-facing message, and the
HTTP status used when the error is returned over the REST surface. The same
codes travel inside WebSocket acknowledgements, so a client sees one taxonomy
regardless of transport.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"friendlink/internal/pkg/logx"
)

// CustomError is the error type used for every expected business failure.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the client-facing description.
	Message string

	// Status is the HTTP status used when this error is sent over REST.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a predefined code. Optional details are
// applied printf-style when the message template has placeholders. Unknown
// codes degrade to ErrUnknown rather than panicking.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("error code %d has no errorMap entry", code),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if code == ErrUnknown && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			logx.Error(originalErr, "Handling ErrUnknown with underlying error")
		}
	} else if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn("Details provided for error, but message template has no formatting placeholders. Details ignored.")
		}
	}

	return &customErr
}
