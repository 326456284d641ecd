package utils

import (
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func init() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
}

func TestGenerateToken(t *testing.T) {
	vendorID := uuid.New()
	email := "tokengen@test.com"
	role := "VENDOR"

	token, err := GenerateToken(vendorID, email, role, nil)
	if err != nil {
		t.Fatalf("expected no error generating token, got: %v", err)
	}

	if token == "" {
		t.Fatal("expected non-empty token string")
	}

	// Verify the token has three parts (header.payload.signature)
	parts := 0
	for _, c := range token {
		if c == '.' {
			parts++
		}
	}
	if parts != 2 {
		t.Errorf("expected JWT with 2 dots, got %d dots", parts)
	}
}

func TestValidateToken(t *testing.T) {
	vendorID := uuid.New()
	email := "validate@test.com"
	role := "EMPLOYEE"
	employeeID := uuid.New()

	token, err := GenerateToken(vendorID, email, role, &employeeID)
	if err != nil {
		t.Fatalf("expected no error generating token, got: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("expected no error validating token, got: %v", err)
	}

	if claims.VendorID != vendorID {
		t.Errorf("expected vendor_id %s, got %s", vendorID, claims.VendorID)
	}
	if claims.Email != email {
		t.Errorf("expected email %s, got %s", email, claims.Email)
	}
	if claims.Role != role {
		t.Errorf("expected role %s, got %s", role, claims.Role)
	}
	if claims.EmployeeID == nil || *claims.EmployeeID != employeeID {
		t.Errorf("expected employee_id %s, got %v", employeeID, claims.EmployeeID)
	}
	if claims.Issuer != "rewardify-backend" {
		t.Errorf("expected issuer 'rewardify-backend', got %s", claims.Issuer)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := os.Getenv("JWT_SECRET")
	vendorID := uuid.New()

	claims := Claims{
		VendorID: vendorID,
		Email:    "expired@test.com",
		Role:     "VENDOR",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "rewardify-backend",
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, err := tokenObj.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}

	_, err = ValidateToken(expiredToken)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestTokenWithoutEmployeeID(t *testing.T) {
	vendorID := uuid.New()

	token, err := GenerateToken(vendorID, "noemployee@test.com", "VENDOR", nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if claims.EmployeeID != nil {
		t.Errorf("expected nil employee_id, got %v", claims.EmployeeID)
	}
}

func TestRefreshTokenHasLongerLifetime(t *testing.T) {
	vendorID := uuid.New()

	refresh, err := GenerateRefreshToken(vendorID, "refresh@test.com", "VENDOR", nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := ValidateToken(refresh)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if claims.Issuer != "rewardify-refresh" {
		t.Errorf("expected issuer 'rewardify-refresh', got %s", claims.Issuer)
	}
	if claims.ExpiresAt.Time.Before(time.Now().Add(6 * 24 * time.Hour)) {
		t.Errorf("expected refresh token to live about a week, expires %v", claims.ExpiresAt.Time)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	vendorID := uuid.New()

	token, err := GenerateToken(vendorID, "tamper@test.com", "VENDOR", nil)
	if err != nil {
		t.Fatal(err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("expected error for tampered token, got nil")
	}
}
