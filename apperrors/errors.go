package apperrors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with an HTTP status code and an
// optional machine-readable reason code for business errors.
type Error struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches wrapped copies against their sentinel by status code and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// WithReason returns a copy of the error carrying a reason code.
func (e *Error) WithReason(reason string) *Error {
	return &Error{Code: e.Code, Reason: reason, Message: e.Message, Err: e.Err}
}

// Wrap returns a copy of the error wrapping the given cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{Code: e.Code, Reason: e.Reason, Message: e.Message, Err: err}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrConflict       = New(http.StatusConflict, "Conflict", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrUpstream       = New(http.StatusBadGateway, "Upstream store error", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
	ErrTokenExpired       = New(http.StatusUnauthorized, "Token expired", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid token", nil)
	ErrEmailNotVerified   = New(http.StatusForbidden, "Email not verified", nil).WithReason("email_not_verified")
)

// Business logic error types
var (
	ErrCartNotFound       = New(http.StatusNotFound, "Cart not found", nil)
	ErrCheckoutIncomplete = New(http.StatusConflict, "Checkout is missing delivery details or a shipping method", nil)
	ErrPaymentFailed      = New(http.StatusBadRequest, "Payment failed", nil)
)

// Respond writes err to the gin context as JSON, falling back to a generic
// 500 for untyped errors.
func Respond(c *gin.Context, err error) {
	if appErr, ok := err.(*Error); ok {
		c.JSON(appErr.Code, appErr)
		return
	}
	c.JSON(http.StatusInternalServerError, ErrInternalServer.Wrap(err))
}
