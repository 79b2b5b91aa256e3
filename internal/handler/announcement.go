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

// AnnouncementHandler serves the announcement child resource.
type AnnouncementHandler struct {
	Announcements repository.AnnouncementStore
	Conferences   repository.ConferenceStore
	Cache         *cache.ConferenceCache
}

type announcementCreateReq struct {
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	Date         *time.Time `json:"date"`
	ConferenceID string     `json:"conference_id"`
}

type announcementUpdateReq struct {
	Title *string    `json:"title"`
	Body  *string    `json:"body"`
	Date  *time.Time `json:"date"`
}

func (h *AnnouncementHandler) load(c echo.Context) (*model.Announcement, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Announcements.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrNotFound
	}
	return a, err
}

func (h *AnnouncementHandler) Get(c echo.Context) error {
	a, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := loadConference(ctx, h.Conferences, a.ConferenceID)
	if err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusOK, a.FullRepr(conf))
}

func (h *AnnouncementHandler) Create(c echo.Context) error {
	var req announcementCreateReq
	if err := c.Bind(&req); err != nil || req.ConferenceID == "" || req.Title == "" {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, req.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}
	a := &model.Announcement{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Body:         req.Body,
		Date:         date,
		ConferenceID: conf.ID,
	}
	if err := h.Announcements.Create(ctx, a); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusCreated, a.FullRepr(conf))
}

func (h *AnnouncementHandler) Update(c echo.Context) error {
	var req announcementUpdateReq
	if err := c.Bind(&req); err != nil {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	a, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, a.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.Date != nil {
		a.Date = req.Date.UTC()
	}
	if err := h.Announcements.Update(ctx, a); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusOK, a.FullRepr(conf))
}

func (h *AnnouncementHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	a, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, a.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}
	if err := h.Announcements.Delete(ctx, a.ID); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.NoContent(http.StatusNoContent)
}
