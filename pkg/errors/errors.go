package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Rule errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"
	ErrRuleIndex      ErrorCode = "RULE_INDEX"
	ErrRuleKind       ErrorCode = "RULE_KIND"

	// Vault errors
	ErrVaultAccess ErrorCode = "VAULT_ACCESS"
	ErrWatch       ErrorCode = "WATCH"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// PathTitleError represents a structured error with code and details
type PathTitleError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PathTitleError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PathTitleError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PathTitleError) Is(target error) bool {
	var targetErr *PathTitleError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PathTitleError with the given code and message
func New(code ErrorCode, message string) *PathTitleError {
	return &PathTitleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PathTitleError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PathTitleError {
	return &PathTitleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PathTitleError
func Wrap(err error, code ErrorCode, message string) *PathTitleError {
	if err == nil {
		return nil
	}
	return &PathTitleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PathTitleError {
	if err == nil {
		return nil
	}
	return &PathTitleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PathTitleError) WithDetail(key string, value interface{}) *PathTitleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PathTitleError) WithDetails(details map[string]interface{}) *PathTitleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ptErr *PathTitleError
	if errors.As(err, &ptErr) {
		return ptErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PathTitleError
func GetErrorCode(err error) ErrorCode {
	var ptErr *PathTitleError
	if errors.As(err, &ptErr) {
		return ptErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PathTitleError
func GetErrorDetails(err error) map[string]interface{} {
	var ptErr *PathTitleError
	if errors.As(err, &ptErr) {
		return ptErr.Details
	}
	return nil
}
