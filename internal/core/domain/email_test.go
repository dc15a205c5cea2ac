package domain

import (
	"strings"
	"testing"
)

func TestParseEmail_Valid(t *testing.T) {
	cases := []string{
		"user@example.com",
		"a@b.co",
		"first.last@example.com",
		"weird!#$%&'*+/=?^_`{|}~-chars@example.com",
		"digits123@sub.domain-with-hyphen.example.org",
		strings.Repeat("x", 64) + "@example.com",
	}
	for _, raw := range cases {
		email, err := ParseEmail(raw)
		if err != nil {
			t.Fatalf("ParseEmail(%q) returned error: %v", raw, err)
		}
		if email.String() != raw {
			t.Fatalf("expected %q round-trip, got %q", raw, email.String())
		}
		if !IsValidEmail(raw) {
			t.Fatalf("IsValidEmail(%q) = false, want true", raw)
		}
	}
}

func TestParseEmail_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":                 "",
		"no at":                 "userexample.com",
		"two ats":               "user@foo@example.com",
		"empty local part":      "@example.com",
		"empty domain":          "user@",
		"consecutive dots":      "a..b@example.com",
		"leading dot":           ".user@example.com",
		"trailing dot":          "user.@example.com",
		"local part too long":   strings.Repeat("x", 65) + "@example.com",
		"label starts hyphen":   "user@-example.com",
		"label ends hyphen":     "user@example-.com",
		"empty label":           "user@example..com",
		"label too long":        "user@" + strings.Repeat("x", 64) + ".com",
		"illegal domain char":   "user@exa_mple.com",
		"illegal local char":    "us er@example.com",
		"total length over 320": strings.Repeat("x", 64) + "@" + strings.Repeat("y", 63) + "." + strings.Repeat("z", 63) + "." + strings.Repeat("w", 63) + "." + strings.Repeat("v", 63) + ".example.com",
	}
	for name, raw := range cases {
		if IsValidEmail(raw) {
			t.Errorf("%s: IsValidEmail(%q) = true, want false", name, raw)
		}
		if _, err := ParseEmail(raw); err == nil {
			t.Errorf("%s: ParseEmail(%q) succeeded, want error", name, raw)
		}
	}
}

func TestEmail_Equality(t *testing.T) {
	a, _ := ParseEmail("user@example.com")
	b, _ := ParseEmail("user@example.com")
	c, _ := ParseEmail("other@example.com")

	if a != b {
		t.Fatalf("expected equal emails to compare equal")
	}
	if a == c {
		t.Fatalf("expected different emails to compare unequal")
	}
}
