package errors

import "fmt"

type ErrorCode string

const (
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrInternalServer ErrorCode = "INTERNAL_SERVER"
	ErrDatabase       ErrorCode = "DATABASE"

	// Pipeline error taxonomy
	ErrConfiguration    ErrorCode = "CONFIGURATION"
	ErrAuthentication   ErrorCode = "AUTHENTICATION"
	ErrConnection       ErrorCode = "CONNECTION"
	ErrWindowFetch      ErrorCode = "WINDOW_FETCH"
	ErrRecordValidation ErrorCode = "RECORD_VALIDATION"
	ErrSchema           ErrorCode = "SCHEMA"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if ae, ok := err.(*AppError); ok {
		return ae.Code == code
	}
	return false
}
