package handler

import (
	"encoding/json"
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

// DocumentHandler serves the document child resource. Reads are open to
// any valid token; writes go through the conference edit guard.
type DocumentHandler struct {
	Documents   repository.DocumentStore
	Conferences repository.ConferenceStore
	Cache       *cache.ConferenceCache
}

type documentCreateReq struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	Data         json.RawMessage `json:"data"`
	ConferenceID string          `json:"conference_id"`
}

type documentUpdateReq struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Type        *string          `json:"type"`
	Data        *json.RawMessage `json:"data"`
}

func (h *DocumentHandler) load(c echo.Context) (*model.Document, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Documents.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrNotFound
	}
	return doc, err
}

func (h *DocumentHandler) Get(c echo.Context) error {
	doc, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := loadConference(ctx, h.Conferences, doc.ConferenceID)
	if err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusOK, doc.FullRepr(conf))
}

func (h *DocumentHandler) Create(c echo.Context) error {
	var req documentCreateReq
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

	doc := &model.Document{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		Data:         req.Data,
		ConferenceID: conf.ID,
	}
	if err := h.Documents.Create(ctx, doc); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusCreated, doc.FullRepr(conf))
}

func (h *DocumentHandler) Update(c echo.Context) error {
	var req documentUpdateReq
	if err := c.Bind(&req); err != nil {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	doc, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, doc.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Description != nil {
		doc.Description = *req.Description
	}
	if req.Type != nil {
		doc.Type = *req.Type
	}
	if req.Data != nil {
		doc.Data = *req.Data
	}
	if err := h.Documents.Update(ctx, doc); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.JSON(http.StatusOK, doc.FullRepr(conf))
}

func (h *DocumentHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	doc, err := h.load(c)
	if err != nil {
		return apierr.Send(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, doc.ConferenceID, user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}
	if err := h.Documents.Delete(ctx, doc.ID); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.NoContent(http.StatusNoContent)
}
