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

// SpeakerHandler serves the speaker child resource.
type SpeakerHandler struct {
	Speakers    repository.SpeakerStore
	Conferences repository.ConferenceStore
	Cache       *cache.ConferenceCache
}

type speakerCreateReq struct {
	Name         string `json:"name"`
	Charge       string `json:"charge"`
	Origin       string `json:"origin"`
	Description  string `json:"description"`
	PictureURL   string `json:"picture_url"`
	ConferenceID string `json:"conference_id"`
}

type speakerUpdateReq struct {
	Name        *string `json:"name"`
	Charge      *string `json:"charge"`
	Origin      *string `json:"origin"`
	Description *string `json:"description"`
	PictureURL  *string `json:"picture_url"`
}

func (h *SpeakerHandler) load(c echo.Context) (*model.Speaker, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Speakers.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrNotFound
	}
	return s, err
}

func (h *SpeakerHandler) Get(c echo.Context) error {
	s, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := loadConference(ctx, h.Conferences, s.ConferenceID)
	if err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusOK, s.FullRepr(conf))
}

func (h *SpeakerHandler) Create(c echo.Context) error {
	var req speakerCreateReq
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

	s := &model.Speaker{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Charge:       req.Charge,
		Origin:       req.Origin,
		Description:  req.Description,
		PictureURL:   req.PictureURL,
		ConferenceID: conf.ID,
	}
	if err := h.Speakers.Create(ctx, s); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusCreated, s.FullRepr(conf))
}

func (h *SpeakerHandler) Update(c echo.Context) error {
	var req speakerUpdateReq
	if err := c.Bind(&req); err != nil {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	s, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, s.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Charge != nil {
		s.Charge = *req.Charge
	}
	if req.Origin != nil {
		s.Origin = *req.Origin
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.PictureURL != nil {
		s.PictureURL = *req.PictureURL
	}
	if err := h.Speakers.Update(ctx, s); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusOK, s.FullRepr(conf))
}

func (h *SpeakerHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	s, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, s.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}
	if err := h.Speakers.Delete(ctx, s.ID); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.NoContent(http.StatusNoContent)
}
