package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrStatusInternalServer  = http.StatusInternalServerError
	ErrStatusClient          = http.StatusBadRequest
	ErrStatusUnauthorized    = http.StatusUnauthorized
	ErrStatusNoPermission    = http.StatusForbidden
	ErrStatusNotFound        = http.StatusNotFound
	ErrStatusConflict        = http.StatusConflict
	ErrStatusTooManyRequests = http.StatusTooManyRequests
)

var (
	ErrInternalServer  = errors.New("Internal server error")
	ErrValidation      = errors.New("Validation failed")
	ErrClient          = errors.New("Bad request")
	ErrUnauthorized    = errors.New("Invalid credentials")
	ErrForbidden       = errors.New("Forbidden access")
	ErrNotFound        = errors.New("Resource not found")
	ErrConflict        = errors.New("Conflicting record found")
	ErrIntegrity       = errors.New("Authentication system error - please contact support")
	ErrTooManyRequests = errors.New("Too many login attempts, try again later")
)

var (
	ErrInvalidCredentials = Unauthorized("Invalid email or password")
	ErrInvalidToken       = Unauthorized("Invalid or expired token")
	ErrEmailAlreadyUsed   = Conflict("Email already in use")
	ErrCodeAlreadyUsed    = Conflict("Employee code already in use")
	ErrDepartmentExists   = Conflict("Department with this name already exists")
	ErrDepartmentHasStaff = Conflict("Cannot delete department with employees. Please reassign employees first.")
)

var errorMap = map[error]int{
	ErrInternalServer:  ErrStatusInternalServer,
	ErrValidation:      ErrStatusClient,
	ErrClient:          ErrStatusClient,
	ErrUnauthorized:    ErrStatusUnauthorized,
	ErrForbidden:       ErrStatusNoPermission,
	ErrNotFound:        ErrStatusNotFound,
	ErrConflict:        ErrStatusConflict,
	ErrIntegrity:       ErrStatusInternalServer,
	ErrTooManyRequests: ErrStatusTooManyRequests,
}

// Error carries a user-facing message and optional field detail on top of one
// of the sentinel kinds above. errors.Is(err, kind) holds for every Error.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func Validation(fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: ErrValidation.Error(), Fields: fields}
}

func ValidationField(field, rule string) *Error {
	return Validation(map[string]string{field: rule})
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// NotFound names the missing entity, e.g. NotFound("Employee").
func NotFound(entity string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", entity)}
}

func Integrity() *Error {
	return &Error{Kind: ErrIntegrity, Message: ErrIntegrity.Error()}
}

func GetErrorStatusCode(err error) int {
	if code, ok := errorMap[err]; ok {
		return code
	}
	for kind, code := range errorMap {
		if errors.Is(err, kind) {
			return code
		}
	}
	return errorMap[ErrInternalServer]
}

// IsKnown reports whether err belongs to one of the sentinel kinds, i.e. whether
// its message is safe to surface to a client.
func IsKnown(err error) bool {
	for kind := range errorMap {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// FieldErrors returns the field detail of a validation error, if any.
func FieldErrors(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
