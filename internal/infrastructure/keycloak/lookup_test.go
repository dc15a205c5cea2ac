package keycloak

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

func testLookup(t *testing.T, handler http.HandlerFunc) (*Lookup, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds := Credentials{ServerURL: srv.URL, Realm: "myrealm", ClientID: "cid", ClientSecret: "secret"}
	return newLookupWithClient(creds, srv.Client(), zerolog.Nop()), srv
}

func TestLookup_FindUserInfo(t *testing.T) {
	lookup, _ := testLookup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/realms/myrealm/users/u1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "u1",
			"username": "alice",
			"firstName": "Alice",
			"lastName": "Administrator",
			"email": "alice@example.com",
			"attributes": {
				"picture": ["https://idp.example.com/alice.png"],
				"zoneinfo": ["UTC"],
				"locale": ["fi-FI"]
			}
		}`))
	})

	id, _ := domain.ParseUserID("u1")
	info, err := lookup.FindUserInfo(context.Background(), id)
	if err != nil {
		t.Fatalf("FindUserInfo returned error: %v", err)
	}
	if info.UserID() != id {
		t.Fatalf("unexpected user id: %s", info.UserID())
	}
	if info.FullName() != "Alice Administrator" {
		t.Fatalf("unexpected full name: %s", info.FullName())
	}
	if info.Email().String() != "alice@example.com" {
		t.Fatalf("unexpected email: %s", info.Email())
	}
	if info.PictureURL() != "https://idp.example.com/alice.png" {
		t.Fatalf("unexpected picture url: %s", info.PictureURL())
	}
	if info.ZoneInfo().String() != "UTC" {
		t.Fatalf("unexpected zone: %s", info.ZoneInfo())
	}
	if info.Locale().String() != "fi-FI" {
		t.Fatalf("unexpected locale: %s", info.Locale())
	}
}

func TestLookup_NotFound(t *testing.T) {
	lookup, _ := testLookup(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"User not found"}`, http.StatusNotFound)
	})

	id, _ := domain.ParseUserID("ghost")
	if _, err := lookup.FindUserInfo(context.Background(), id); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLookup_ServerError(t *testing.T) {
	lookup, _ := testLookup(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	id, _ := domain.ParseUserID("u1")
	if _, err := lookup.FindUserInfo(context.Background(), id); !errors.Is(err, domain.ErrLookupUnavailable) {
		t.Fatalf("expected ErrLookupUnavailable, got %v", err)
	}
}

func TestLookup_TransportError(t *testing.T) {
	lookup, srv := testLookup(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	id, _ := domain.ParseUserID("u1")
	if _, err := lookup.FindUserInfo(context.Background(), id); !errors.Is(err, domain.ErrLookupUnavailable) {
		t.Fatalf("expected ErrLookupUnavailable, got %v", err)
	}
}

func TestLookup_FullNameFallbacks(t *testing.T) {
	cases := []struct {
		name string
		user *userRepresentation
		want string
	}{
		{"first and last", &userRepresentation{FirstName: "Alice", LastName: "Administrator", Username: "alice"}, "Alice Administrator"},
		{"first only", &userRepresentation{FirstName: "Alice", Username: "alice"}, "Alice"},
		{"last only", &userRepresentation{LastName: "Administrator", Username: "alice"}, "Administrator"},
		{"username fallback", &userRepresentation{Username: "alice"}, "alice"},
	}
	for _, tc := range cases {
		if got := buildFullName(tc.user); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
