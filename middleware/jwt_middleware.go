// middleware/jwt_middleware.go
package middleware

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// JwtCustomClaims for JWT token
type JwtCustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// Valid implements the Claims interface for Echo's JWT middleware
func (c JwtCustomClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// Token blacklist: in-memory always, Redis additionally when available so
// revocations survive restarts.
var (
	blacklistMu    sync.RWMutex
	tokenBlacklist = make(map[string]time.Time)
	blacklistRedis *redis.Client
)

// SetBlacklistRedis wires the optional Redis store for revoked tokens
func SetBlacklistRedis(client *redis.Client) {
	blacklistRedis = client
}

// BlacklistToken adds a token to the blacklist until expiry
func BlacklistToken(token string, expiry time.Time) {
	blacklistMu.Lock()
	tokenBlacklist[token] = expiry
	blacklistMu.Unlock()

	if blacklistRedis != nil {
		ttl := time.Until(expiry)
		if ttl <= 0 {
			ttl = time.Minute
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := blacklistRedis.Set(ctx, "blacklist:"+token, 1, ttl).Err(); err != nil {
			log.Printf("Warning: failed to persist token revocation: %v", err)
		}
	}
}

// IsTokenBlacklisted checks if a token has been revoked
func IsTokenBlacklisted(token string) bool {
	blacklistMu.RLock()
	_, exists := tokenBlacklist[token]
	blacklistMu.RUnlock()
	if exists {
		return true
	}

	if blacklistRedis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		n, err := blacklistRedis.Exists(ctx, "blacklist:"+token).Result()
		if err == nil && n > 0 {
			return true
		}
	}
	return false
}

// CleanupBlacklist periodically removes expired tokens from the in-memory
// blacklist. Redis entries expire on their own TTL.
func CleanupBlacklist() {
	for {
		time.Sleep(1 * time.Hour)
		now := time.Now()
		blacklistMu.Lock()
		for token, expiry := range tokenBlacklist {
			if now.After(expiry) {
				delete(tokenBlacklist, token)
			}
		}
		blacklistMu.Unlock()
	}
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// JWTMiddleware returns a configured JWT middleware. The revocation check
// runs as part of the handler chain so a blacklisted token aborts the
// request before the protected handler executes.
func JWTMiddleware() echo.MiddlewareFunc {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Printf("Warning: JWT_SECRET environment variable is not set")
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return echo.NewHTTPError(echo.ErrUnauthorized.Code, "JWT configuration error")
			}
		}
	}

	verify := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(secret),
		Claims:     &JwtCustomClaims{},
		ErrorHandler: func(err error) error {
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Invalid or expired token")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			user := c.Get("user").(*jwt.Token)

			if IsTokenBlacklisted(user.Raw) {
				return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Token has been invalidated")
			}

			claims := user.Claims.(*JwtCustomClaims)
			c.Set("userId", claims.UserID)
			c.Set("role", claims.Role)
			c.Set("email", claims.Email)
			return next(c)
		})
	}
}

// GenerateJWT generates a signed token for the user, valid for 24 hours
func GenerateJWT(userID, email, role string) (string, error) {
	claims := &JwtCustomClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET environment variable is required")
	}

	return token.SignedString([]byte(secret))
}

// GetUserFromToken extracts user claims from the validated JWT token
func GetUserFromToken(c echo.Context) *JwtCustomClaims {
	user := c.Get("user")
	if user == nil {
		return nil
	}

	token, ok := user.(*jwt.Token)
	if !ok {
		return nil
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok {
		return nil
	}

	return claims
}
