package keycloak

import "testing"

func TestCredentialsFromIssuer(t *testing.T) {
	creds, err := CredentialsFromIssuer("https://kc.example.com/realms/myrealm", "cid", "secret")
	if err != nil {
		t.Fatalf("CredentialsFromIssuer returned error: %v", err)
	}
	if creds.ServerURL != "https://kc.example.com" {
		t.Fatalf("unexpected server url: %s", creds.ServerURL)
	}
	if creds.Realm != "myrealm" {
		t.Fatalf("unexpected realm: %s", creds.Realm)
	}
	if creds.ClientID != "cid" || creds.ClientSecret != "secret" {
		t.Fatalf("client credentials not carried over")
	}
}

func TestCredentialsFromIssuer_TrailingPath(t *testing.T) {
	creds, err := CredentialsFromIssuer("https://kc.example.com/realms/myrealm/.well-known/openid-configuration", "cid", "secret")
	if err != nil {
		t.Fatalf("CredentialsFromIssuer returned error: %v", err)
	}
	if creds.Realm != "myrealm" {
		t.Fatalf("unexpected realm: %s", creds.Realm)
	}
}

func TestCredentialsFromIssuer_Invalid(t *testing.T) {
	cases := map[string]string{
		"no realms segment": "https://kc.example.com/noRealms",
		"empty realm":       "https://kc.example.com/realms/",
	}
	for name, issuer := range cases {
		if _, err := CredentialsFromIssuer(issuer, "cid", "secret"); err == nil {
			t.Errorf("%s: expected error for %q", name, issuer)
		}
	}
}

func TestCredentials_Validate(t *testing.T) {
	full := Credentials{ServerURL: "https://kc.example.com", Realm: "r", ClientID: "c", ClientSecret: "s"}
	if err := full.Validate(); err != nil {
		t.Fatalf("expected valid credentials, got %v", err)
	}

	for name, mutate := range map[string]func(*Credentials){
		"server url": func(c *Credentials) { c.ServerURL = "" },
		"realm":      func(c *Credentials) { c.Realm = "" },
		"client id":  func(c *Credentials) { c.ClientID = "" },
		"secret":     func(c *Credentials) { c.ClientSecret = "" },
	} {
		creds := full
		mutate(&creds)
		if err := creds.Validate(); err == nil {
			t.Errorf("expected error for missing %s", name)
		}
	}
}

func TestCredentials_URLs(t *testing.T) {
	creds := Credentials{ServerURL: "https://kc.example.com", Realm: "myrealm", ClientID: "c", ClientSecret: "s"}
	if got := creds.tokenURL(); got != "https://kc.example.com/realms/myrealm/protocol/openid-connect/token" {
		t.Fatalf("unexpected token url: %s", got)
	}
	if got := creds.adminUserURL("u1"); got != "https://kc.example.com/admin/realms/myrealm/users/u1" {
		t.Fatalf("unexpected admin url: %s", got)
	}
}

func TestAdminUserURL_EscapesUserID(t *testing.T) {
	creds := Credentials{ServerURL: "https://kc.example.com", Realm: "myrealm", ClientID: "cid", ClientSecret: "secret"}

	got := creds.adminUserURL("weird/../id?x=1")
	want := "https://kc.example.com/admin/realms/myrealm/users/weird%2F..%2Fid%3Fx=1"
	if got != want {
		t.Fatalf("adminUserURL = %q, want %q", got, want)
	}
}
