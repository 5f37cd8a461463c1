/*
Package errs defines the application error type and the business error codes.

errorMap assigns every code its client-facing message and, where relevant,
a non-200 HTTP status for the REST surface.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Malformed request body.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Friend Request Business Logic Errors
	ErrTargetUnreachable: {Code: ErrTargetUnreachable, Message: "That user is not connected right now."},
	ErrRequestNotFound:   {Code: ErrRequestNotFound, Message: "Friend request not found."},
	ErrNotAuthorized:     {Code: ErrNotAuthorized, Message: "You are not allowed to act on this friend request."},
	ErrInvalidState:      {Code: ErrInvalidState, Message: "Can only %s pending requests."},

	// 3xxx: Session and Security Errors
	ErrUnauthorized:  {Code: ErrUnauthorized, Message: "An auth token is required to connect.", Status: http.StatusUnauthorized},
	ErrSessionKicked: {Code: ErrSessionKicked, Message: "You connected from another session."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
