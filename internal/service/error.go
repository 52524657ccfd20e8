package service

// Code represents a stable machine error code out of the closed taxonomy.
// Codes are never free-form strings; every failure surfaced by the layer carries one of these.
type Code string

const (
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeNotFound            Code = "DB_NOT_FOUND"
	CodeConstraintViolation Code = "DB_CONSTRAINT_VIOLATION"
	CodeQueryError          Code = "DB_QUERY_ERROR"

	CodeAuthInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS"
	CodeAuthUserNotFound       Code = "AUTH_USER_NOT_FOUND"
	CodeAuthSessionExpired     Code = "AUTH_SESSION_EXPIRED"
	CodeAuthEmailInUse         Code = "AUTH_EMAIL_IN_USE"
	CodeAuthWeakPassword       Code = "AUTH_WEAK_PASSWORD"
)

// Transient returns whether an error carrying this code is retry-eligible.
// Only store-level query failures are; validation, not-found and constraint violations are
// definitional and retrying them would never change the outcome.
func (code Code) Transient() bool {
	return code == CodeQueryError
}

// Expected returns whether an error carrying this code is an ordinary outcome of a well-formed
// call (a missed lookup, a rejected input) rather than an operational failure. Expected errors
// are logged at debug level instead of error level.
func (code Code) Expected() bool {
	switch code {
	case CodeValidation, CodeNotFound, CodeAuthUserNotFound, CodeAuthInvalidCredentials,
		CodeAuthSessionExpired, CodeAuthEmailInUse, CodeAuthWeakPassword:
		return true
	default:
		return false
	}
}

// Error represents a failure of a service operation.
// The message is safe to surface to callers; the underlying cause is kept for diagnostics only
// and never crosses the serialization boundary.
type Error struct {
	Message string `json:"message"`
	Code    Code   `json:"code"`
	Cause   error  `json:"-"`
}

var _ error = (*Error)(nil)

// NewError creates a new service error
func NewError(code Code, message string, cause error) *Error {
	return &Error{
		Message: message,
		Code:    code,
		Cause:   cause,
	}
}

// Error returns the sanitized error message
func (err *Error) Error() string {
	return err.Message
}

// Unwrap returns the underlying cause, if any
func (err *Error) Unwrap() error {
	return err.Cause
}
