package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/identity-service/internal/auth"
)

// MeHandler handles HTTP requests about the current user.
type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Get returns the profile of the authenticated user.
//
// @Summary      Get the current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userInfoResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/me [get]
func (h *MeHandler) Get(c echo.Context) error {
	info, err := auth.Require(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserInfoResponse(info))
}
