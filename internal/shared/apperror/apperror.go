package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// Severity decides which status code a failure maps to at the HTTP boundary.
type Severity string

const (
	SeverityBusiness  Severity = "Business"
	SeverityTechnical Severity = "Technical"
)

// StatusCode: Business -> 400, còn lại -> 500
func (s Severity) StatusCode() int {
	if s == SeverityBusiness {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error là lỗi có gắn component và severity
type Error struct {
	Component string
	Severity  Severity
	Message   string
	Err       error

	stack []byte
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Component, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *Error) Unwrap() error {
	return e.Err
}

// Stack returns the goroutine stack captured when the error was built.
func (e *Error) Stack() string {
	return string(e.stack)
}

// Business tạo lỗi nghiệp vụ do client gây ra (400)
func Business(component, message string) *Error {
	return &Error{
		Component: component,
		Severity:  SeverityBusiness,
		Message:   message,
		stack:     debug.Stack(),
	}
}

// Technical wraps a failure the client cannot fix (500).
func Technical(component, message string, err error) *Error {
	return &Error{
		Component: component,
		Severity:  SeverityTechnical,
		Message:   message,
		Err:       err,
		stack:     debug.Stack(),
	}
}

// SeverityOf trả về severity của lỗi đầu tiên có tag trong chain, mặc định Technical
func SeverityOf(err error) Severity {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Severity != "" {
		return appErr.Severity
	}
	return SeverityTechnical
}

// Describe returns the client-facing message and the stack for err.
// Tagged errors render as "[Component] Message" with the stack captured at
// construction; anything else uses err.Error() and the caller's stack.
func Describe(err error) (message, stack string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return fmt.Sprintf("[%s] %s", appErr.Component, appErr.Message), appErr.Stack()
	}
	return err.Error(), string(debug.Stack())
}
