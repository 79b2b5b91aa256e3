package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/cache"
	"github.com/myconference/api/internal/middleware"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
)

// OrganizerHandler serves the organizer child resource.
type OrganizerHandler struct {
	Organizers  repository.OrganizerStore
	Conferences repository.ConferenceStore
	Cache       *cache.ConferenceCache
}

type organizerCreateReq struct {
	Name         string `json:"name"`
	Origin       string `json:"origin"`
	Details      string `json:"details"`
	Group        string `json:"group"`
	ConferenceID string `json:"conference_id"`
}

type organizerUpdateReq struct {
	Name    *string `json:"name"`
	Origin  *string `json:"origin"`
	Details *string `json:"details"`
	Group   *string `json:"group"`
}

func (h *OrganizerHandler) load(c echo.Context) (*model.Organizer, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.Organizers.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrNotFound
	}
	return o, err
}

func (h *OrganizerHandler) Get(c echo.Context) error {
	o, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := loadConference(ctx, h.Conferences, o.ConferenceID)
	if err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusOK, o.FullRepr(conf))
}

func (h *OrganizerHandler) Create(c echo.Context) error {
	var req organizerCreateReq
	if err := c.Bind(&req); err != nil || req.ConferenceID == "" || req.Name == "" {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, req.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	o := &model.Organizer{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Origin:       req.Origin,
		Details:      req.Details,
		Group:        req.Group,
		ConferenceID: conf.ID,
	}
	if err := h.Organizers.Create(ctx, o); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusCreated, o.FullRepr(conf))
}

func (h *OrganizerHandler) Update(c echo.Context) error {
	var req organizerUpdateReq
	if err := c.Bind(&req); err != nil {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	o, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, o.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	if req.Name != nil {
		o.Name = *req.Name
	}
	if req.Origin != nil {
		o.Origin = *req.Origin
	}
	if req.Details != nil {
		o.Details = *req.Details
	}
	if req.Group != nil {
		o.Group = *req.Group
	}
	if err := h.Organizers.Update(ctx, o); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusOK, o.FullRepr(conf))
}

func (h *OrganizerHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	o, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, o.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}
	if err := h.Organizers.Delete(ctx, o.ID); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.NoContent(http.StatusNoContent)
}
