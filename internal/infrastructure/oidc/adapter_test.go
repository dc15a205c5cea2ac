package oidc

import (
	"testing"
	"time"

	"github.com/zitadel/oidc/v3/pkg/oidc"
	"golang.org/x/text/language"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

func TestParseZoneInfo(t *testing.T) {
	helsinki, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	if got := ParseZoneInfo("Europe/Helsinki"); got.String() != helsinki.String() {
		t.Fatalf("expected Europe/Helsinki, got %s", got)
	}
	if got := ParseZoneInfo(""); got != time.Local {
		t.Fatalf("expected local zone for absent claim, got %s", got)
	}
	if got := ParseZoneInfo("Not/AZone"); got != time.Local {
		t.Fatalf("expected local zone fallback for bad claim, got %s", got)
	}
}

func TestParseLocale(t *testing.T) {
	if got := ParseLocale("fi-FI"); got.String() != "fi-FI" {
		t.Fatalf("expected fi-FI, got %s", got)
	}
	if got := ParseLocale(""); got != domain.DefaultLocale {
		t.Fatalf("expected default locale for absent claim, got %s", got)
	}
	if got := ParseLocale("!!"); got != domain.DefaultLocale {
		t.Fatalf("expected default locale fallback for bad claim, got %s", got)
	}
}

func TestFromUserInfo(t *testing.T) {
	claims := &oidc.UserInfo{
		Subject: "f3b1c2d4",
		UserInfoProfile: oidc.UserInfoProfile{
			Name:     "Alice Administrator",
			Profile:  "https://idp.example.com/alice",
			Picture:  "https://idp.example.com/alice.png",
			Zoneinfo: "UTC",
			Locale:   oidc.NewLocale(language.MustParse("sv-SE")),
		},
		UserInfoEmail: oidc.UserInfoEmail{Email: "alice@example.com"},
	}

	info, err := FromUserInfo(claims)
	if err != nil {
		t.Fatalf("FromUserInfo returned error: %v", err)
	}
	if info.UserID().String() != "f3b1c2d4" {
		t.Fatalf("unexpected user id: %s", info.UserID())
	}
	if info.FullName() != "Alice Administrator" {
		t.Fatalf("unexpected full name: %s", info.FullName())
	}
	if info.Email().String() != "alice@example.com" {
		t.Fatalf("unexpected email: %s", info.Email())
	}
	if info.ProfileURL() != "https://idp.example.com/alice" || info.PictureURL() != "https://idp.example.com/alice.png" {
		t.Fatalf("unexpected urls: %s %s", info.ProfileURL(), info.PictureURL())
	}
	if info.ZoneInfo().String() != "UTC" {
		t.Fatalf("unexpected zone: %s", info.ZoneInfo())
	}
	if info.Locale().String() != "sv-SE" {
		t.Fatalf("unexpected locale: %s", info.Locale())
	}
}

func TestFromUserInfo_MissingMandatoryClaims(t *testing.T) {
	if _, err := FromUserInfo(&oidc.UserInfo{
		UserInfoEmail: oidc.UserInfoEmail{Email: "a@example.com"},
	}); err == nil {
		t.Fatalf("expected error for missing subject")
	}

	if _, err := FromUserInfo(&oidc.UserInfo{Subject: "u1"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestFromUserInfo_FullNameFallbacks(t *testing.T) {
	base := func() *oidc.UserInfo {
		return &oidc.UserInfo{
			Subject:       "u1",
			UserInfoEmail: oidc.UserInfoEmail{Email: "u1@example.com"},
		}
	}

	cases := []struct {
		name   string
		mutate func(*oidc.UserInfo)
		want   string
	}{
		{"given and family", func(c *oidc.UserInfo) { c.GivenName, c.FamilyName = "Ursula", "User" }, "Ursula User"},
		{"given only", func(c *oidc.UserInfo) { c.GivenName = "Ursula" }, "Ursula"},
		{"family only", func(c *oidc.UserInfo) { c.FamilyName = "User" }, "User"},
		{"preferred username", func(c *oidc.UserInfo) { c.PreferredUsername = "ursula" }, "ursula"},
		{"subject fallback", func(c *oidc.UserInfo) {}, "u1"},
	}
	for _, tc := range cases {
		claims := base()
		tc.mutate(claims)
		info, err := FromUserInfo(claims)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if info.FullName() != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, info.FullName())
		}
	}
}

func TestFromClaims(t *testing.T) {
	principal, err := FromClaims(map[string]any{
		"sub":      "u1",
		"name":     "Ursula User",
		"email":    "user@example.com",
		"zoneinfo": "UTC",
		"exp":      1790000000,
	})
	if err != nil {
		t.Fatalf("FromClaims returned error: %v", err)
	}

	info := principal.AppUserInfo()
	if info.UserID().String() != "u1" || info.FullName() != "Ursula User" {
		t.Fatalf("unexpected principal info: %s %s", info.UserID(), info.FullName())
	}
	if info.ZoneInfo().String() != "UTC" {
		t.Fatalf("unexpected zone: %s", info.ZoneInfo())
	}
}
