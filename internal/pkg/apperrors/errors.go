package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrInvalidFormat    = errors.New("invalid token format")
)

// Branch errors
var (
	ErrBranchNotFound = NewResourceNotFoundError("branch not found")
	// ErrBranchInactiveOrMissing is returned when a pastor or event references a branch
	// that does not exist or has been deactivated.
	ErrBranchInactiveOrMissing = NewBadRequestError("invalid or inactive branch specified")
	ErrBranchHasRelations      = NewBadRequestError("cannot delete branch with active pastors or upcoming events, reassign or complete them first")
	ErrBranchHasPastorRecords  = NewBadRequestError("branch still has pastor records and cannot be removed")
)

// Entity not-found errors
var (
	ErrPastorNotFound     = NewResourceNotFoundError("pastor not found")
	ErrEventNotFound      = NewResourceNotFoundError("event not found")
	ErrChurchInfoNotFound = NewResourceNotFoundError("church info not found")
	ErrHighlightNotFound  = NewResourceNotFoundError("highlight not found")
	ErrTestimonyNotFound  = NewResourceNotFoundError("testimony not found")
	ErrAdminNotFound      = NewResourceNotFoundError("admin not found")
)

// Admin errors
var (
	ErrAdminAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "admin with this username or email already exists")
)

// NewResourceNotFoundError returns a not-found error carrying message
func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewConflictError returns a conflict error carrying message
func NewConflictError(message string) error {
	return NewCustomError(ErrConflict, message)
}

// NewBadRequestError returns a bad request error carrying message
func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// Is reports whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	for _, e := range append([]error{target}, errList...) {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError attaches a client-facing message to one of the sentinels above.
// errors.Is sees through it to the sentinel.
type CustomError struct {
	Err     error
	Message string
	// StatusMsg replaces Message in API responses when set
	StatusMsg string
}

func (e *CustomError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError wraps err with message
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithStatusMsg sets the message shown to API clients
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

// Message returns the most specific human-readable message carried by err.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		if ce.StatusMsg != "" {
			return ce.StatusMsg
		}
		return ce.Error()
	}
	return err.Error()
}
