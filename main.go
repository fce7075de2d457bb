package main

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/MuhammadZain243/commission-subscription-backend/config"
	"github.com/MuhammadZain243/commission-subscription-backend/middleware"
	"github.com/MuhammadZain243/commission-subscription-backend/routes"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	env := config.LoadEnv()

	// Redis is optional; token revocation falls back to memory without it
	if redisClient := config.ConnectRedis(env); redisClient != nil {
		middleware.SetBlacklistRedis(redisClient)
	}
	defer config.CloseRedis()

	client := config.ConnectDB(env)
	db := client.Database(env.DBName)

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	rateLimiter := middleware.NewRateLimiter()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())

	routes.SetupRoutes(e, db, env)

	go middleware.CleanupBlacklist()

	log.Printf("Starting server in %s mode", env.Environment)
	e.Logger.Fatal(e.Start(":" + env.Port))
}
