/*
Package errs defines the application error type and the business error codes.

The codes identify specific business or transport failures both inside the
server and in messages sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates a missing or malformed request field.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates an unsupported Content-Type header.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a malformed JSON request body.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing data after the JSON body.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates the client exceeded the request rate limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Friend Request Business Logic Errors
const (
	// ErrTargetUnreachable indicates the recipient of a friend request has no
	// active connection at send time.
	ErrTargetUnreachable = 2101

	// ErrRequestNotFound indicates the given request id does not exist.
	ErrRequestNotFound = 2102

	// ErrNotAuthorized indicates the caller is neither the sender nor the
	// recipient required for the attempted operation.
	ErrNotAuthorized = 2103

	// ErrInvalidState indicates the operation is not valid for the request's
	// current status, such as cancelling a request that is no longer pending.
	ErrInvalidState = 2104
)

// 3xxx: Session and Security Errors
const (
	// ErrUnauthorized indicates a connection attempt without an auth token.
	ErrUnauthorized = 3001

	// ErrSessionKicked indicates the connection was replaced by a newer one
	// for the same user id.
	ErrSessionKicked = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal server error.
	ErrUnknown = 5000
)
