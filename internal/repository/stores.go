package repository

import (
	"context"
	"time"

	"github.com/myconference/api/internal/model"
)

// The store interfaces below are what handlers and the auth core consume.
// The concrete MySQL repositories in this package implement them; tests
// substitute in-memory fakes.

type ApplicationStore interface {
	GetByID(ctx context.Context, id string) (*model.Application, error)
}

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type LoginMethodStore interface {
	Create(ctx context.Context, lm *model.LoginMethod) error
	GetByTypeAndKey(ctx context.Context, typ, key string) (*model.LoginMethod, error)
}

type TokenStore interface {
	GetAccess(ctx context.Context, id string) (*model.AccessToken, error)
	GetRefresh(ctx context.Context, id string) (*model.RefreshToken, error)
	// CreatePair persists an access/refresh pair atomically: both rows
	// are written or neither is.
	CreatePair(ctx context.Context, at *model.AccessToken, rt *model.RefreshToken) error
	// DeactivateSession bulk-deactivates every access and refresh token
	// for the (user, application, device) triple. userID nil matches the
	// anonymous sessions of the device.
	DeactivateSession(ctx context.Context, userID *string, applicationID, device string) error
	// RedeemRefresh deactivates a refresh token only if it is still
	// active, reporting whether this call won the redemption.
	RedeemRefresh(ctx context.Context, id string) (bool, error)
	// Logout deactivates the access token and every refresh token bound
	// to it.
	Logout(ctx context.Context, accessTokenID string) error
}

type ConferenceStore interface {
	// Create persists the conference and its initial owner membership in
	// one transaction.
	Create(ctx context.Context, conf *model.Conference, ownerID string) error
	// Get loads the conference row and its role set.
	Get(ctx context.Context, id string) (*model.Conference, error)
	Children(ctx context.Context, id string) (*model.ConferenceChildren, error)
	Update(ctx context.Context, conf *model.Conference) error
	// Delete cascades over every child table before removing the
	// conference itself.
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, conferenceID, userID string, role model.Role) error
}

type DocumentStore interface {
	GetByID(ctx context.Context, id string) (*model.Document, error)
	Create(ctx context.Context, d *model.Document) error
	Update(ctx context.Context, d *model.Document) error
	Delete(ctx context.Context, id string) error
}

type VenueStore interface {
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	Create(ctx context.Context, v *model.Venue) error
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id string) error
}

type SpeakerStore interface {
	GetByID(ctx context.Context, id string) (*model.Speaker, error)
	Create(ctx context.Context, s *model.Speaker) error
	Update(ctx context.Context, s *model.Speaker) error
	Delete(ctx context.Context, id string) error
}

type OrganizerStore interface {
	GetByID(ctx context.Context, id string) (*model.Organizer, error)
	Create(ctx context.Context, o *model.Organizer) error
	Update(ctx context.Context, o *model.Organizer) error
	Delete(ctx context.Context, id string) error
}

type AnnouncementStore interface {
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	Create(ctx context.Context, a *model.Announcement) error
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
}

type AgendaEventStore interface {
	GetByID(ctx context.Context, id string) (*model.AgendaEvent, error)
	Create(ctx context.Context, e *model.AgendaEvent) error
	Update(ctx context.Context, e *model.AgendaEvent) error
	Delete(ctx context.Context, id string) error
}

type InviteCodeStore interface {
	GetByID(ctx context.Context, id string) (*model.InviteCode, error)
	Create(ctx context.Context, ic *model.InviteCode) error
	// Redeem deactivates the code and records the redeemer, but only if
	// the code is still active and unused; reports whether this call won.
	Redeem(ctx context.Context, id, userID string, at time.Time) (bool, error)
}
