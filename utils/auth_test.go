package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret", time.Hour)

	token, err := GenerateJWTToken("65f0c0ffee0000000000beef", "ada@example.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}
	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("ParseJWTToken: %v", err)
	}
	if claims.UserID != "65f0c0ffee0000000000beef" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseJWTTokenRejects(t *testing.T) {
	SetJWTSecret("test-secret", time.Hour)

	if _, err := ParseJWTToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, _ := expired.SignedString([]byte("test-secret"))
	if _, err := ParseJWTToken(signed); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired token: %v", err)
	}

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "u1"})
	signed, _ = other.SignedString([]byte("another-secret"))
	if _, err := ParseJWTToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign signature: %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("correct horse", hash) {
		t.Error("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected mismatch")
	}
}

func TestExtractNameFromEmail(t *testing.T) {
	if got := ExtractNameFromEmail("ada@example.com"); got != "ada" {
		t.Errorf("got %q", got)
	}
	if got := ExtractNameFromEmail(""); got != "" {
		t.Errorf("got %q", got)
	}
}
