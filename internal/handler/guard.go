// Package handler implements the HTTP endpoints. Handlers bind the
// request body, run the store calls with a bounded context and translate
// failures into the apierr taxonomy.
package handler

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
)

// reqCtx derives a bounded context for store calls from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// loadConference fetches a conference, mapping a missing row to the
// not_found API error.
func loadConference(ctx context.Context, store repository.ConferenceStore, id string) (*model.Conference, error) {
	conf, err := store.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return conf, nil
}

// editableConference is the mutation gate shared by every child-resource
// write: the conference must exist and the caller must hold the owner or
// collaborator role on it.
func editableConference(ctx context.Context, store repository.ConferenceStore, id, userID string) (*model.Conference, error) {
	conf, err := loadConference(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if !conf.Members.CanEdit(userID) {
		return nil, apierr.ErrForbidden
	}
	return conf, nil
}
