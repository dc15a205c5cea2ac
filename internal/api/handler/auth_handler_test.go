package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

type stubAuthenticator struct {
	loginFn func(ctx context.Context, email, password string) (string, domain.AppUserInfo, error)
}

func (s *stubAuthenticator) Login(ctx context.Context, email, password string) (string, domain.AppUserInfo, error) {
	return s.loginFn(ctx, email, password)
}

func TestAuthHandler_Login(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	user := newTestUserInfo(t, "user-1", "Alice Administrator", "alice@example.com")
	stub := &stubAuthenticator{
		loginFn: func(_ context.Context, email, password string) (string, domain.AppUserInfo, error) {
			if email != "alice@example.com" || password != "tops3cr3t" {
				t.Fatalf("unexpected credentials: %s", email)
			}
			return "signed-token", user, nil
		},
	}

	body := strings.NewReader(`{"email":"alice@example.com","password":"tops3cr3t"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("token = %v", resp["token"])
	}
	userPayload, ok := resp["user"].(map[string]any)
	if !ok || userPayload["id"] != "user-1" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthenticator{
		loginFn: func(context.Context, string, string) (string, domain.AppUserInfo, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}

	body := strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAuthHandler(stub).Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthenticator{
		loginFn: func(context.Context, string, string) (string, domain.AppUserInfo, error) {
			t.Fatalf("authenticator should not be called")
			return "", nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAuthHandler(stub).Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
