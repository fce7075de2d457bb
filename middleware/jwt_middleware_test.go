package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func TestGenerateJWTRoundtrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	signed, err := GenerateJWT("user-123", "rep@example.com", "SALESPERSON")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret-key"), nil
	})
	if err != nil {
		t.Fatalf("ParseWithClaims() error = %v", err)
	}
	if !token.Valid {
		t.Fatal("token should be valid")
	}
	if claims.UserID != "user-123" {
		t.Errorf("userId = %q, want user-123", claims.UserID)
	}
	if claims.Email != "rep@example.com" {
		t.Errorf("email = %q, want rep@example.com", claims.Email)
	}
	if claims.Role != "SALESPERSON" {
		t.Errorf("role = %q, want SALESPERSON", claims.Role)
	}

	expiry := time.Unix(claims.ExpiresAt, 0)
	if until := time.Until(expiry); until < 23*time.Hour || until > 25*time.Hour {
		t.Errorf("expiry %v away, want ~24h", until)
	}
}

func TestGenerateJWTWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	signed, err := GenerateJWT("user-123", "rep@example.com", "SALESPERSON")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	_, err = jwt.ParseWithClaims(signed, &JwtCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Error("expected parse error with the wrong secret")
	}
}

func TestGenerateJWTMissingSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	if _, err := GenerateJWT("user-123", "rep@example.com", "ADMIN"); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}

func TestClaimsValid(t *testing.T) {
	expired := JwtCustomClaims{StandardClaims: jwt.StandardClaims{
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}}
	if err := expired.Valid(); err == nil {
		t.Error("expired claims should not validate")
	}

	future := JwtCustomClaims{StandardClaims: jwt.StandardClaims{
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}}
	if err := future.Valid(); err != nil {
		t.Errorf("live claims should validate, got %v", err)
	}

	notYet := JwtCustomClaims{StandardClaims: jwt.StandardClaims{
		NotBefore: time.Now().Add(time.Hour).Unix(),
	}}
	if err := notYet.Valid(); err == nil {
		t.Error("not-yet-valid claims should not validate")
	}
}

func TestJWTMiddlewareSetsClaims(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	signed, err := GenerateJWT("user-123", "rep@example.com", "SALESPERSON")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	e := echo.New()
	handled := false
	e.GET("/protected", func(c echo.Context) error {
		handled = true
		if c.Get("userId") != "user-123" {
			t.Errorf("userId = %v, want user-123", c.Get("userId"))
		}
		if c.Get("role") != "SALESPERSON" {
			t.Errorf("role = %v, want SALESPERSON", c.Get("role"))
		}
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !handled {
		t.Fatal("handler did not run for a valid token")
	}
}

func TestJWTMiddlewareBlocksRevokedToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	signed, err := GenerateJWT("user-456", "rep@example.com", "SALESPERSON")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	BlacklistToken(signed, time.Now().Add(time.Hour))

	e := echo.New()
	handled := false
	e.POST("/protected", func(c echo.Context) error {
		handled = true
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if handled {
		t.Fatal("handler ran despite the token being revoked")
	}
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	e := echo.New()
	handled := false
	e.GET("/protected", func(c echo.Context) error {
		handled = true
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if handled {
		t.Fatal("handler ran despite an invalid token")
	}
}

func TestTokenBlacklist(t *testing.T) {
	token := "some.signed.token"
	if IsTokenBlacklisted(token) {
		t.Fatal("fresh token should not be blacklisted")
	}

	BlacklistToken(token, time.Now().Add(time.Hour))
	if !IsTokenBlacklisted(token) {
		t.Error("token should be blacklisted after revocation")
	}
	if IsTokenBlacklisted("another.token") {
		t.Error("unrelated token should not be blacklisted")
	}
}
