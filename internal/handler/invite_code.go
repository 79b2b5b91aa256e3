package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/middleware"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/queue"
	"github.com/myconference/api/internal/repository"
)

// InviteCodeHandler serves invite codes: creation by conference editors,
// inspection by the creator, redemption by the invitee.
type InviteCodeHandler struct {
	Invites     repository.InviteCodeStore
	Conferences repository.ConferenceStore
	Publisher   *queue.Publisher
	Clock       clockwork.Clock
}

type inviteCreateReq struct {
	ConferenceID   string `json:"conference_id"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
}

// Create issues a new code and publishes the invite event for the
// mailer. Publish failures are not surfaced: the code exists and can be
// forwarded manually.
func (h *InviteCodeHandler) Create(c echo.Context) error {
	var req inviteCreateReq
	if err := c.Bind(&req); err != nil || req.ConferenceID == "" {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	req.RecipientEmail = strings.ToLower(strings.TrimSpace(req.RecipientEmail))
	if _, err := mail.ParseAddress(req.RecipientEmail); err != nil {
		return apierr.Send(c, apierr.ErrInvalidEmail)
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, req.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	ic := &model.InviteCode{
		ID:             uuid.NewString(),
		Active:         true,
		ConferenceID:   conf.ID,
		CreatedBy:      user.ID,
		RecipientEmail: req.RecipientEmail,
		RecipientName:  req.RecipientName,
		CreatedDate:    h.Clock.Now().UTC(),
	}
	if err := h.Invites.Create(ctx, ic); err != nil {
		return apierr.Send(c, err)
	}

	_ = h.Publisher.PublishInviteCreated(ctx, queue.InviteCreatedEvent{
		InviteCodeID:   ic.ID,
		ConferenceID:   conf.ID,
		ConferenceName: conf.Name,
		CreatedBy:      user.ID,
		RecipientEmail: ic.RecipientEmail,
		RecipientName:  ic.RecipientName,
		CreatedAt:      ic.CreatedDate.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, ic.FullRepr())
}

// Get returns the full representation to the code's creator only.
func (h *InviteCodeHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	ic, err := h.Invites.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return apierr.Send(c, apierr.ErrNotFound)
	}
	if err != nil {
		return apierr.Send(c, err)
	}
	if ic.CreatedBy != user.ID {
		return apierr.Send(c, apierr.ErrForbidden)
	}
	return c.JSON(http.StatusOK, ic.FullRepr())
}

// Redeem consumes the code and joins the caller to the conference as an
// assistant. The conditional deactivation makes redemption exactly-once
// under concurrent attempts.
func (h *InviteCodeHandler) Redeem(c echo.Context) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	ic, err := h.Invites.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return apierr.Send(c, apierr.ErrNotFound)
	}
	if err != nil {
		return apierr.Send(c, err)
	}
	if !ic.Active {
		return apierr.Send(c, apierr.ErrInvalidInviteCode)
	}

	won, err := h.Invites.Redeem(ctx, ic.ID, user.ID, h.Clock.Now().UTC())
	if err != nil {
		return apierr.Send(c, err)
	}
	if !won {
		return apierr.Send(c, apierr.ErrInvalidInviteCode)
	}

	conf, err := loadConference(ctx, h.Conferences, ic.ConferenceID)
	if err != nil {
		return apierr.Send(c, err)
	}
	// Existing members keep their current role.
	if _, member := conf.Members.Lookup(user.ID); !member {
		if err := h.Conferences.AddMember(ctx, conf.ID, user.ID, model.RoleAssistant); err != nil {
			return apierr.Send(c, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
