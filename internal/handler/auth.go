package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/auth"
	"github.com/myconference/api/internal/middleware"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
	"github.com/myconference/api/internal/utils"
)

// AuthHandler bundles the dependencies of the auth endpoints.
type AuthHandler struct {
	Apps         repository.ApplicationStore
	Users        repository.UserStore
	LoginMethods repository.LoginMethodStore
	Tokens       repository.TokenStore
	Verifier     *auth.Verifier
	Issuer       *auth.Issuer
	BcryptCost   int
}

// ----- DTOs -----

type signupReq struct {
	ApplicationID string `json:"application_id"`
	DeviceID      string `json:"device_id"`
	UserData      struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user_data"`
}

type loginReq struct {
	ApplicationID string           `json:"application_id"`
	DeviceID      string           `json:"device_id"`
	Credentials   auth.Credentials `json:"credentials"`
}

type loginResp struct {
	AccessToken         string     `json:"access_token"`
	AccessTokenExpires  time.Time  `json:"access_token_expires"`
	RefreshToken        string     `json:"refresh_token"`
	RefreshTokenExpires time.Time  `json:"refresh_token_expires"`
	User                *model.Ref `json:"user"`
}

// Signup creates a user together with its password login method.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil || req.ApplicationID == "" {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Apps.GetByID(ctx, req.ApplicationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierr.Send(c, apierr.ErrInvalidApplication)
		}
		return apierr.Send(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.UserData.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return apierr.Send(c, apierr.ErrInvalidEmail)
	}
	if len(req.UserData.Password) < 8 {
		return apierr.Send(c, apierr.ErrInvalidPassword)
	}

	// Registered email fails the same way as a malformed one.
	if _, err := h.LoginMethods.GetByTypeAndKey(ctx, model.LoginTypePassword, email); err == nil {
		return apierr.Send(c, apierr.ErrInvalidEmail)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apierr.Send(c, err)
	}

	secret, err := utils.HashPassword(req.UserData.Password, h.BcryptCost)
	if err != nil {
		return apierr.Send(c, err)
	}

	user := &model.User{ID: uuid.NewString(), Created: time.Now().UTC()}
	if err := h.Users.Create(ctx, user); err != nil {
		return apierr.Send(c, err)
	}
	lm := &model.LoginMethod{
		ID:     uuid.NewString(),
		Type:   model.LoginTypePassword,
		Key:    email,
		UserID: user.ID,
		Secret: secret,
	}
	if err := h.LoginMethods.Create(ctx, lm); err != nil {
		// Lost a concurrent signup race on the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return apierr.Send(c, apierr.ErrInvalidEmail)
		}
		return apierr.Send(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user.MicroRepr()})
}

// Login verifies the submitted credentials and responds with a fresh
// token pair. Anonymous logins return user null.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.ApplicationID == "" || req.DeviceID == "" {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	app, user, err := h.Verifier.Verify(ctx, req.ApplicationID, req.DeviceID, req.Credentials)
	if err != nil {
		return apierr.Send(c, err)
	}
	at, rt, err := h.Issuer.Issue(ctx, app, user, req.DeviceID)
	if err != nil {
		return apierr.Send(c, err)
	}

	resp := loginResp{
		AccessToken:         at.ID,
		AccessTokenExpires:  at.Expires,
		RefreshToken:        rt.ID,
		RefreshTokenExpires: rt.Expires,
	}
	if user != nil {
		ref := user.MicroRepr()
		resp.User = &ref
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented access token and its refresh tokens.
func (h *AuthHandler) Logout(c echo.Context) error {
	tok := middleware.CurrentToken(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tokens.Logout(ctx, tok.ID); err != nil {
		return apierr.Send(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckUser is a liveness probe for authenticated sessions.
func (h *AuthHandler) CheckUser(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"user": user.MicroRepr()})
}

// CheckAnon is the probe variant that accepts anonymous sessions.
func (h *AuthHandler) CheckAnon(c echo.Context) error {
	resp := echo.Map{"user": nil}
	if user := middleware.CurrentUser(c); user != nil {
		resp["user"] = user.MicroRepr()
	}
	return c.JSON(http.StatusOK, resp)
}
