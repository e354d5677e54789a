package jwt

import (
	"errors"
	"testing"
)

const (
	testSecret        = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
	testIdentity      = "0x1111111111111111111111111111111111111111"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, testIdentity, "mallory", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Identity != testIdentity || claims.Username != "mallory" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, testIdentity, "mallory", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = ValidateAccessToken(token, "some-other-secret")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(42, testIdentity, "mallory", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = ValidateAccessToken(token, testSecret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(42, "token-id-1", testRefreshSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.UserID != 42 || claims.TokenID != "token-id-1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	access, err := GenerateAccessToken(42, testIdentity, "mallory", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	// Signed with the access secret, so the refresh secret rejects it
	if _, err := ValidateRefreshToken(access, testRefreshSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	if _, err := ValidateAccessToken("not-a-jwt", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
