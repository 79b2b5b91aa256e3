package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/cache"
	"github.com/myconference/api/internal/middleware"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
)

// AgendaEventHandler serves the agenda-event child resource.
type AgendaEventHandler struct {
	Events      repository.AgendaEventStore
	Conferences repository.ConferenceStore
	Cache       *cache.ConferenceCache
}

type agendaEventCreateReq struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         *time.Time `json:"date"`
	ConferenceID string     `json:"conference_id"`
}

type agendaEventUpdateReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

func (h *AgendaEventHandler) load(c echo.Context) (*model.AgendaEvent, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrNotFound
	}
	return e, err
}

func (h *AgendaEventHandler) Get(c echo.Context) error {
	e, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := loadConference(ctx, h.Conferences, e.ConferenceID)
	if err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusOK, e.FullRepr(conf))
}

func (h *AgendaEventHandler) Create(c echo.Context) error {
	var req agendaEventCreateReq
	if err := c.Bind(&req); err != nil || req.ConferenceID == "" || req.Title == "" || req.Date == nil {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, req.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	e := &model.AgendaEvent{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date.UTC(),
		ConferenceID: conf.ID,
	}
	if err := h.Events.Create(ctx, e); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusCreated, e.FullRepr(conf))
}

func (h *AgendaEventHandler) Update(c echo.Context) error {
	var req agendaEventUpdateReq
	if err := c.Bind(&req); err != nil {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	e, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, e.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Date != nil {
		e.Date = req.Date.UTC()
	}
	if err := h.Events.Update(ctx, e); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusOK, e.FullRepr(conf))
}

func (h *AgendaEventHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	e, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, e.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}
	if err := h.Events.Delete(ctx, e.ID); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.NoContent(http.StatusNoContent)
}
