package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error class across services and controllers
type ErrorCode string

const (
	// Media host errors
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"

	// Record store errors
	ErrCodeStoreWriteFailed  ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeStoreReadFailed   ErrorCode = "STORE_READ_FAILED"
	ErrCodeStoreDeleteFailed ErrorCode = "STORE_DELETE_FAILED"

	// Validation errors
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// AppError is the error type returned by services
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// UploadFailed wraps a media host failure
func UploadFailed(err error) *AppError {
	return NewAppError(ErrCodeUploadFailed, "upload to media host failed", err)
}

// StoreWriteFailed wraps a record store insert failure
func StoreWriteFailed(err error) *AppError {
	return NewAppError(ErrCodeStoreWriteFailed, "saving check-in failed", err)
}

// StoreReadFailed wraps a record store query failure
func StoreReadFailed(err error) *AppError {
	return NewAppError(ErrCodeStoreReadFailed, "listing check-ins failed", err)
}

// StoreDeleteFailed wraps a record store delete failure
func StoreDeleteFailed(err error) *AppError {
	return NewAppError(ErrCodeStoreDeleteFailed, "deleting check-in failed", err)
}

// GetAppError extracts the AppError from err, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	ErrMissingFile = errors.New("missing file")
	ErrEmptyURL    = errors.New("media host returned no secure url")
	ErrInvalidID   = errors.New("invalid id")
)
