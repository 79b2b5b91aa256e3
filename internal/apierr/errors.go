// Package apierr defines the closed error taxonomy exposed by the API.
// Every failure a client can observe is one of the errors below, rendered
// as {"code": "...", "message": "..."} with the associated HTTP status.
package apierr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error carries a machine-readable code, a human message and the HTTP
// status used when the error is sent to a client. It implements the
// error interface so lower layers (credential verification, guards) can
// return it directly and handlers can pass it through unchanged.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

func newError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Global errors.
var (
	ErrInvalidBody = newError(http.StatusConflict, "invalid_body", "request body is missing required fields")
	ErrNotFound    = newError(http.StatusNotFound, "not_found", "entity not found")
	ErrForbidden   = newError(http.StatusForbidden, "forbidden", "not allowed to edit conference")
	ErrInternal    = newError(http.StatusInternalServerError, "internal_error", "internal error")
)

// Authentication errors.
var (
	ErrInvalidApplication    = newError(http.StatusUnauthorized, "invalid_application", "invalid application")
	ErrInvalidAuthentication = newError(http.StatusUnauthorized, "invalid_authentication", "invalid authorization header")
	ErrInvalidAccess         = newError(http.StatusUnauthorized, "invalid_access", "invalid access token")
	ErrInvalidRefresh        = newError(http.StatusUnauthorized, "invalid_refresh", "invalid refresh token")

	ErrInvalidEmailOrPassword = newError(http.StatusBadRequest, "invalid_email_or_password", "invalid email or password")

	ErrInvalidCredentials = newError(http.StatusConflict, "invalid_credentials", "invalid credentials")
	ErrInvalidPassword    = newError(http.StatusConflict, "invalid_password", "invalid password")
	ErrInvalidEmail       = newError(http.StatusConflict, "invalid_email", "invalid email")

	ErrInvalidInviteCode = newError(http.StatusConflict, "invalid_invite_code", "invalid invite code")
)

// Send writes err as a JSON response. Unclassified errors are reported
// as a generic internal error so store details never leak to clients.
func Send(c echo.Context, err error) error {
	if e, ok := err.(*Error); ok {
		return c.JSON(e.Status, e)
	}
	return c.JSON(ErrInternal.Status, ErrInternal)
}
