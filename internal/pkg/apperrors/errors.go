package apperrors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrInvalidTenant    ErrorType = "INVALID_TENANT"
	ErrInvalidSide      ErrorType = "INVALID_SIDE"
	ErrInvalidRequest   ErrorType = "INVALID_REQUEST"
	ErrContractNotFound ErrorType = "CONTRACT_NOT_FOUND"
	ErrRateLimited      ErrorType = "RATE_LIMITED"
	ErrStoreUnavailable ErrorType = "STORE_UNAVAILABLE"
	ErrInternal         ErrorType = "INTERNAL_ERROR"
)

// AppError is the standard error struct for the application
type AppError struct {
	Type       ErrorType `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errType ErrorType, msg string, cause error) *AppError {
	return &AppError{
		Type:       errType,
		Message:    msg,
		Cause:      cause,
		HTTPStatus: mapTypeToStatus(errType),
	}
}

func NewInvalidTenant(msg string) *AppError {
	return New(ErrInvalidTenant, msg, nil)
}

func NewInvalidRequest(msg string) *AppError {
	return New(ErrInvalidRequest, msg, nil)
}

func NewContractNotFound() *AppError {
	return New(ErrContractNotFound, "contract_not_found", nil)
}

// NewStoreUnavailable wraps a failed round trip to the ledger store.
func NewStoreUnavailable(err error) *AppError {
	return New(ErrStoreUnavailable, "ledger store unavailable", err)
}

func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return New(ErrInternal, err.Error(), err)
}

func mapTypeToStatus(t ErrorType) int {
	switch t {
	case ErrInvalidTenant, ErrInvalidSide, ErrInvalidRequest:
		return http.StatusBadRequest
	case ErrContractNotFound:
		return http.StatusNotFound
	case ErrRateLimited:
		return http.StatusTooManyRequests
	case ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
