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

// VenueHandler serves the venue child resource.
type VenueHandler struct {
	Venues      repository.VenueStore
	Conferences repository.ConferenceStore
	Cache       *cache.ConferenceCache
}

type venueCreateReq struct {
	Name         string         `json:"name"`
	Location     model.Location `json:"location"`
	Details      string         `json:"details"`
	ConferenceID string         `json:"conference_id"`
}

type venueUpdateReq struct {
	Name     *string         `json:"name"`
	Location *model.Location `json:"location"`
	Details  *string         `json:"details"`
}

func (h *VenueHandler) load(c echo.Context) (*model.Venue, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrNotFound
	}
	return v, err
}

func (h *VenueHandler) Get(c echo.Context) error {
	v, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := loadConference(ctx, h.Conferences, v.ConferenceID)
	if err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusOK, v.FullRepr(conf))
}

func (h *VenueHandler) Create(c echo.Context) error {
	var req venueCreateReq
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

	v := &model.Venue{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Loc:          req.Location,
		Details:      req.Details,
		ConferenceID: conf.ID,
	}
	if err := h.Venues.Create(ctx, v); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusCreated, v.FullRepr(conf))
}

func (h *VenueHandler) Update(c echo.Context) error {
	var req venueUpdateReq
	if err := c.Bind(&req); err != nil {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	v, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, v.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Location != nil {
		v.Loc = *req.Location
	}
	if req.Details != nil {
		v.Details = *req.Details
	}
	if err := h.Venues.Update(ctx, v); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusOK, v.FullRepr(conf))
}

func (h *VenueHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	v, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, v.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}
	if err := h.Venues.Delete(ctx, v.ID); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.NoContent(http.StatusNoContent)
}
