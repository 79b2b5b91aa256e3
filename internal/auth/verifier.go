// Package auth implements the authentication core: credential
// verification, session rotation and token pair issuance.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
	"github.com/myconference/api/internal/utils"
)

// Credential type tags. The set is closed: anything else fails with
// invalid_credentials.
const (
	TypeAnonymous  = "anonymous"
	TypePassword   = "password"
	TypeRefresh    = "refresh"
	TypeThirdParty = "thirdparty"
)

// Credentials is the tagged variant carried in the login body. Only the
// fields matching Type are consulted.
type Credentials struct {
	Type         string `json:"type"`
	Email        string `json:"email,omitempty"`
	Password     string `json:"password,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Verifier resolves login credentials to (application, user-or-nil).
// Every failure is one of the apierr taxonomy errors so handlers can
// send it to the client unchanged.
type Verifier struct {
	Apps         repository.ApplicationStore
	LoginMethods repository.LoginMethodStore
	Tokens       repository.TokenStore
	Clock        clockwork.Clock
}

// Verify checks the application first and unconditionally, then
// dispatches on the credential type. The returned user is nil for
// anonymous logins.
func (v *Verifier) Verify(ctx context.Context, applicationID, device string, creds Credentials) (*model.Application, *model.User, error) {
	app, err := v.Apps.GetByID(ctx, applicationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, apierr.ErrInvalidApplication
	}
	if err != nil {
		return nil, nil, err
	}

	switch creds.Type {
	case TypeAnonymous:
		return app, nil, nil
	case TypePassword:
		user, err := v.verifyPassword(ctx, creds)
		return app, user, err
	case TypeRefresh:
		user, err := v.verifyRefresh(ctx, app, device, creds)
		return app, user, err
	case TypeThirdParty:
		// Reserved. Fails explicitly so a stub can never mint a session.
		return nil, nil, apierr.ErrInvalidCredentials
	default:
		return nil, nil, apierr.ErrInvalidCredentials
	}
}

// verifyPassword resolves a password credential. Unknown email and wrong
// password are indistinguishable to the caller.
func (v *Verifier) verifyPassword(ctx context.Context, creds Credentials) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	lm, err := v.LoginMethods.GetByTypeAndKey(ctx, model.LoginTypePassword, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrInvalidEmailOrPassword
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(lm.Secret, creds.Password) {
		return nil, apierr.ErrInvalidEmailOrPassword
	}
	return &model.User{ID: lm.UserID}, nil
}

// verifyRefresh redeems a refresh token. The token must be active, not
// expired and bound to the same application and device; redemption is
// single-use, so losing the conditional deactivation also fails.
func (v *Verifier) verifyRefresh(ctx context.Context, app *model.Application, device string, creds Credentials) (*model.User, error) {
	rt, err := v.Tokens.GetRefresh(ctx, creds.RefreshToken)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrInvalidRefresh
	}
	if err != nil {
		return nil, err
	}
	if !rt.Active ||
		rt.Expires.Before(v.Clock.Now()) ||
		rt.ApplicationID != app.ID ||
		rt.Device != device {
		return nil, apierr.ErrInvalidRefresh
	}
	won, err := v.Tokens.RedeemRefresh(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apierr.ErrInvalidRefresh
	}
	if rt.UserID == nil {
		return nil, nil
	}
	return &model.User{ID: *rt.UserID}, nil
}
