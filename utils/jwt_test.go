package utils

import (
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GenerateToken(42, "ana@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != 42 || role != "admin" {
		t.Fatalf("got userID=%d role=%q", userID, role)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-a")
	token, err := GenerateToken(1, "x@example.com", "user")
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "segredo-b")
	if _, _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")
	for _, bad := range []string{"", "abc", "a.b.c"} {
		if _, _, err := ValidateToken(bad); err == nil {
			t.Errorf("ValidateToken(%q): want error", bad)
		}
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/me", nil)
	if _, ok := BearerToken(r); ok {
		t.Fatal("missing header reported as present")
	}

	r.Header.Set("Authorization", "Basic abc")
	if _, ok := BearerToken(r); ok {
		t.Fatal("non-bearer scheme accepted")
	}

	r.Header.Set("Authorization", "Bearer tok123")
	tok, ok := BearerToken(r)
	if !ok || tok != "tok123" {
		t.Fatalf("got %q, %v", tok, ok)
	}
}
