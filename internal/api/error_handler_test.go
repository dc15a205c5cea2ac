package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"no current user", domain.ErrNoCurrentUser, http.StatusUnauthorized, "authentication required"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{"invalid user id", domain.ErrInvalidUserID, http.StatusBadRequest, "invalid user id"},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest, "invalid email address"},
		{"description too long", domain.ErrDescriptionTooLong, http.StatusBadRequest, "task description too long"},
		{"lookup unavailable", domain.ErrLookupUnavailable, http.StatusBadGateway, "user lookup unavailable"},
		{"wrapped lookup unavailable", fmt.Errorf("%w: dial tcp: refused", domain.ErrLookupUnavailable), http.StatusBadGateway, "user lookup unavailable"},
		{"echo error passes through", echo.NewHTTPError(http.StatusForbidden, "forbidden"), http.StatusForbidden, "forbidden"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handle(tc.err, c)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] != tc.wantMsg {
				t.Fatalf("error = %q, want %q", resp["error"], tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := c.NoContent(http.StatusOK); err != nil {
		t.Fatalf("commit response: %v", err)
	}

	handle(domain.ErrUserNotFound, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
