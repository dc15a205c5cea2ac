package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/identity-service/internal/api/metrics"
	"github.com/identity-platform/identity-service/internal/core/domain"
	"github.com/identity-platform/identity-service/internal/core/ports"
)

// AuthHandler handles the development login endpoint. It is only routed
// when the development user registry is enabled; production deployments
// authenticate against the external identity provider instead.
type AuthHandler struct {
	authenticator ports.Authenticator
}

func NewAuthHandler(authenticator ports.Authenticator) *AuthHandler {
	return &AuthHandler{authenticator: authenticator}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  userInfoResponse `json:"user"`
}

// Login verifies credentials against the development registry and mints
// a session token.
//
// @Summary      Login with a development user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, info, err := h.authenticator.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  toUserInfoResponse(info),
	})
}
