package utils

import (
	"testing"
	"time"
)

func TestGenerateULIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateULID()
		if len(id) != 26 {
			t.Fatalf("ULID length = %d, want 26", len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate ULID %s", id)
		}
		seen[id] = true
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("tr0ub4dor&3", hash) {
		t.Error("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("default", "cust-123", "user", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.TenantID != "default" || claims.Subject != "cust-123" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ValidateJWT(token, "wrong-secret"); err == nil {
		t.Error("token validated with wrong secret")
	}
}

func TestJWTExpiry(t *testing.T) {
	token, err := GenerateJWT("default", "cust-123", "user", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token, "secret"); err == nil {
		t.Error("expired token validated")
	}
}
