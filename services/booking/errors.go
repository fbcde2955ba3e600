package booking

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies booking service failures.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindNotFound       ErrorKind = "not_found"
	KindForbidden      ErrorKind = "forbidden"
	KindConflict       ErrorKind = "conflict"
	KindInvalidState   ErrorKind = "invalid_state"
	KindPaymentMethod  ErrorKind = "payment_method"
	KindPaymentFailure ErrorKind = "payment_failure"
	KindInternal       ErrorKind = "internal"
)

// ServiceError is the structured outcome every booking operation reports on
// failure. The HTTP layer translates it directly into a response.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int
	Key        string
	Message    string
	Data       map[string]any
	cause      error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Key, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

func validationError(key, message string, data map[string]any) *ServiceError {
	return &ServiceError{Kind: KindValidation, StatusCode: http.StatusBadRequest, Key: key, Message: message, Data: data}
}

func notFoundError(key, message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, StatusCode: http.StatusNotFound, Key: key, Message: message}
}

func forbiddenError() *ServiceError {
	return &ServiceError{
		Kind:       KindForbidden,
		StatusCode: http.StatusForbidden,
		Key:        "FORBIDDEN",
		Message:    "you do not have access to this booking request",
	}
}

func conflictError() *ServiceError {
	return &ServiceError{
		Kind:       KindConflict,
		StatusCode: http.StatusConflict,
		Key:        "BOOKING_CONFLICT",
		Message:    "the requested time window overlaps an existing booking",
	}
}

func invalidStateError(currentStatus string) *ServiceError {
	return &ServiceError{
		Kind:       KindInvalidState,
		StatusCode: http.StatusBadRequest,
		Key:        "INVALID_BOOKING_STATUS",
		Message:    "the booking request does not permit this operation in its current status",
		Data:       map[string]any{"currentStatus": currentStatus},
	}
}

func paymentMethodError(key, message string, data map[string]any) *ServiceError {
	return &ServiceError{Kind: KindPaymentMethod, StatusCode: http.StatusBadRequest, Key: key, Message: message, Data: data}
}

func paymentFailureError(key string, cause error) *ServiceError {
	return &ServiceError{
		Kind:       KindPaymentFailure,
		StatusCode: http.StatusPaymentRequired,
		Key:        key,
		Message:    "the charge attempt failed",
		cause:      cause,
	}
}

func internalError(cause error) *ServiceError {
	return &ServiceError{
		Kind:       KindInternal,
		StatusCode: http.StatusInternalServerError,
		Key:        "INTERNAL_SERVER_ERROR",
		Message:    "an unexpected error occurred",
		cause:      cause,
	}
}
