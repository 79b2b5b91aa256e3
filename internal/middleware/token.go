// Package middleware provides the request-level checks shared by the
// API routes: access token resolution and auth-endpoint rate limiting.
package middleware

import (
	"errors"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
)

// Context keys for the resolved token and user.
const (
	ctxToken = "access_token"
	ctxUser  = "user"
)

// TokenCheck returns middleware that resolves the access token from the
// Authorization header. The header must be exactly `Token <id>`; the
// scheme is a case-sensitive literal and the separator a single space.
// The token must exist, be active and unexpired; when requireUser is
// set, anonymous tokens are rejected too. On success the token and its
// user (nil for anonymous) are attached to the request context.
func TokenCheck(tokens repository.TokenStore, clock clockwork.Clock, requireUser bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			parts := strings.Split(c.Request().Header.Get("Authorization"), " ")
			if len(parts) != 2 || parts[0] != "Token" {
				return apierr.Send(c, apierr.ErrInvalidAuthentication)
			}

			tok, err := tokens.GetAccess(c.Request().Context(), parts[1])
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return apierr.Send(c, err)
			}
			if tok == nil ||
				!tok.Active ||
				tok.Expires.Before(clock.Now()) ||
				(requireUser && tok.User == nil) {
				return apierr.Send(c, apierr.ErrInvalidAccess)
			}

			c.Set(ctxToken, tok)
			if tok.User != nil {
				c.Set(ctxUser, tok.User)
			}
			return next(c)
		}
	}
}

// CurrentToken returns the access token resolved by TokenCheck.
func CurrentToken(c echo.Context) *model.AccessToken {
	tok, _ := c.Get(ctxToken).(*model.AccessToken)
	return tok
}

// CurrentUser returns the authenticated user, or nil for anonymous
// sessions.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(ctxUser).(*model.User)
	return u
}
