package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = 36 * time.Hour
	DefaultRefreshTTL = 28 * 24 * time.Hour
)

// Issuer rotates prior sessions and mints access/refresh pairs.
type Issuer struct {
	Tokens     repository.TokenStore
	Clock      clockwork.Clock
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Issue deactivates every token for the (user, application, device)
// triple and persists a fresh pair atomically. user is nil for
// anonymous sessions; those rotate per device within the application.
func (i *Issuer) Issue(ctx context.Context, app *model.Application, user *model.User, device string) (*model.AccessToken, *model.RefreshToken, error) {
	var userID *string
	if user != nil {
		userID = &user.ID
	}

	if err := i.Tokens.DeactivateSession(ctx, userID, app.ID, device); err != nil {
		return nil, nil, err
	}

	now := i.Clock.Now().UTC()
	at := &model.AccessToken{
		ID:            uuid.NewString(),
		Active:        true,
		UserID:        userID,
		ApplicationID: app.ID,
		Device:        device,
		Created:       now,
		Used:          now,
		Expires:       now.Add(i.AccessTTL),
		User:          user,
	}
	rt := &model.RefreshToken{
		ID:            uuid.NewString(),
		Active:        true,
		UserID:        userID,
		AccessTokenID: at.ID,
		ApplicationID: app.ID,
		Device:        device,
		Created:       now,
		Expires:       now.Add(i.RefreshTTL),
	}

	if err := i.Tokens.CreatePair(ctx, at, rt); err != nil {
		return nil, nil, err
	}
	return at, rt, nil
}

// NewIssuer builds an issuer with the default lifetimes.
func NewIssuer(tokens repository.TokenStore, clock clockwork.Clock) *Issuer {
	return &Issuer{
		Tokens:     tokens,
		Clock:      clock,
		AccessTTL:  DefaultAccessTTL,
		RefreshTTL: DefaultRefreshTTL,
	}
}
