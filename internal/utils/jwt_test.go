package utils

import (
	"testing"
	"time"
)

func TestTokenRoundtrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(7, "operatore", "admin", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "operatore" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(7, "operatore", "admin", "secret-a", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token, "secret-b"); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(7, "operatore", "admin", "secret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token, "secret"); err == nil {
		t.Fatal("expired token must not validate")
	}
}
