package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/repository"
)

// UserHandler serves the user resource. Only the micro representation
// is exposed; users carry no public profile data.
type UserHandler struct {
	Users repository.UserStore
}

func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return apierr.Send(c, apierr.ErrNotFound)
	}
	if err != nil {
		return apierr.Send(c, err)
	}
	return c.JSON(http.StatusOK, user.MicroRepr())
}
