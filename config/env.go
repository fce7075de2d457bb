// config/env.go
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds all configuration read from the environment
type Env struct {
	Environment    string
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	BcryptCost     int
	CommissionRate float64
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
}

// requiredEnvVars are warned about when missing so deployments fail loudly in logs
var requiredEnvVars = []string{
	"ENV",
	"PORT",
	"MONGODB_URI",
	"JWT_SECRET",
	"BCRYPT_SALT",
}

// LoadEnv reads .env (if present) and builds the typed configuration.
// Defaults match local development.
func LoadEnv() *Env {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	for _, key := range requiredEnvVars {
		if os.Getenv(key) == "" {
			log.Printf("Warning: missing required env variable: %s", key)
		}
	}

	env := &Env{
		Environment:    getEnv("ENV", "development"),
		Port:           getEnv("PORT", "5000"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		DBName:         getEnv("DB_NAME", "commissions"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		BcryptCost:     getEnvInt("BCRYPT_SALT", 12),
		CommissionRate: getEnvFloat("COMMISSION_RATE", 0.10),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
	}

	if env.CommissionRate < 0 || env.CommissionRate > 1 {
		log.Printf("Warning: COMMISSION_RATE %v out of [0,1], falling back to 0.10", env.CommissionRate)
		env.CommissionRate = 0.10
	}

	return env
}

// IsDevelopment reports whether the app runs in development mode
func (e *Env) IsDevelopment() bool {
	return e.Environment == "development" || e.Environment == "dev"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
