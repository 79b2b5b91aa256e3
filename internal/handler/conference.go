package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/cache"
	"github.com/myconference/api/internal/middleware"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
)

// ConferenceHandler serves the conference resource. Reads pick the
// representation by membership: members get the full view, everyone
// else the cached reduced view.
type ConferenceHandler struct {
	Conferences repository.ConferenceStore
	Cache       *cache.ConferenceCache
}

type conferenceCreateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CSS         string `json:"css"`
}

type conferenceUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CSS         *string `json:"css"`
}

func (h *ConferenceHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	id := c.Param("id")
	user := middleware.CurrentUser(c)

	// Non-members may be served straight from the cache, before the
	// conference row is even loaded.
	member := false
	var conf *model.Conference
	if user != nil {
		var err error
		conf, err = loadConference(ctx, h.Conferences, id)
		if err != nil {
			return apierr.Send(c, err)
		}
		_, member = conf.Members.Lookup(user.ID)
	}

	if !member {
		if body, ok := h.Cache.GetReduced(ctx, id); ok {
			return c.JSONBlob(http.StatusOK, body)
		}
	}
	if conf == nil {
		var err error
		conf, err = loadConference(ctx, h.Conferences, id)
		if err != nil {
			return apierr.Send(c, err)
		}
	}

	children, err := h.Conferences.Children(ctx, id)
	if err != nil {
		return apierr.Send(c, err)
	}

	if member {
		return c.JSON(http.StatusOK, conf.FullRepr(children))
	}

	body, err := json.Marshal(conf.ReducedRepr(children))
	if err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.SetReduced(ctx, id, body)
	return c.JSONBlob(http.StatusOK, body)
}

// Create persists a conference with the caller as its owner.
func (h *ConferenceHandler) Create(c echo.Context) error {
	var req conferenceCreateReq
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf := &model.Conference{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CSS:         req.CSS,
		Members:     model.RoleSet{model.RoleOwner: {user.ID}},
	}
	if err := h.Conferences.Create(ctx, conf, user.ID); err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusCreated, conf.FullRepr(&model.ConferenceChildren{}))
}

// Update applies a partial edit. Owners and collaborators only.
func (h *ConferenceHandler) Update(c echo.Context) error {
	var req conferenceUpdateReq
	if err := c.Bind(&req); err != nil {
		return apierr.Send(c, apierr.ErrInvalidBody)
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := editableConference(ctx, h.Conferences, c.Param("id"), user.ID)
	if err != nil {
		return apierr.Send(c, err)
	}
	if req.Name != nil {
		conf.Name = *req.Name
	}
	if req.Description != nil {
		conf.Description = *req.Description
	}
	if req.CSS != nil {
		conf.CSS = *req.CSS
	}
	if err := h.Conferences.Update(ctx, conf); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)

	children, err := h.Conferences.Children(ctx, conf.ID)
	if err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusOK, conf.FullRepr(children))
}

// Delete removes the conference and everything it owns. Owner only.
func (h *ConferenceHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	conf, err := loadConference(ctx, h.Conferences, c.Param("id"))
	if err != nil {
		return apierr.Send(c, err)
	}
	if !conf.Members.IsOwner(user.ID) {
		return apierr.Send(c, apierr.ErrForbidden)
	}
	if err := h.Conferences.Delete(ctx, conf.ID); err != nil {
		return apierr.Send(c, err)
	}
	h.Cache.Invalidate(ctx, conf.ID)
	return c.NoContent(http.StatusNoContent)
}
