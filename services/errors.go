package services

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the HTTP layer. Every validation failure carries
// the offending field and one of these codes; no partial writes are ever
// committed once a ServiceError is returned.
const (
	CodeNotFound          = "not_found"
	CodeInvalidState      = "invalid_state"
	CodeInvalidReference  = "invalid_reference"
	CodeInvalidRange      = "invalid_range"
	CodeInvalidTransition = "invalid_transition"
	CodeConflict          = "conflict"
)

type ServiceError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ServiceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NotFound(entity string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Field: entity, Message: entity + " not found"}
}

func InvalidState(field, message string) *ServiceError {
	return &ServiceError{Code: CodeInvalidState, Field: field, Message: message}
}

func InvalidReference(field, message string) *ServiceError {
	return &ServiceError{Code: CodeInvalidReference, Field: field, Message: message}
}

func InvalidRange(field, message string) *ServiceError {
	return &ServiceError{Code: CodeInvalidRange, Field: field, Message: message}
}

func InvalidTransition(message string) *ServiceError {
	return &ServiceError{Code: CodeInvalidTransition, Field: "status", Message: message}
}

func Conflict(field, message string) *ServiceError {
	return &ServiceError{Code: CodeConflict, Field: field, Message: message}
}

// AsServiceError unwraps err into a ServiceError, if it is one.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
