package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/identity-service/internal/api/metrics"
	"github.com/identity-platform/identity-service/internal/core/domain"
	"github.com/identity-platform/identity-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user profile lookups.
type UserHandler struct {
	lookup ports.UserInfoLookup
}

func NewUserHandler(lookup ports.UserInfoLookup) *UserHandler {
	return &UserHandler{lookup: lookup}
}

// Get resolves a user's profile by ID.
//
// @Summary      Get a user's profile by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userInfoResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := domain.ParseUserID(c.Param("id"))
	if err != nil {
		return err
	}

	info, err := h.lookup.FindUserInfo(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.UserLookupErrorsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrLookupUnavailable):
			metrics.UserLookupErrorsTotal.WithLabelValues("unavailable").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, toUserInfoResponse(info))
}
