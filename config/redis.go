// config/redis.go
package config

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

var redisClient *redis.Client

// ConnectRedis establishes connection to Redis. Redis is optional: when the
// connection fails, logout token revocation degrades to the in-memory list.
func ConnectRedis(env *Env) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         env.RedisAddr,
		Password:     env.RedisPassword,
		DB:           env.RedisDB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Println("Token revocation will use the in-memory blacklist only")
		return nil
	}

	log.Println("Connected to Redis")
	redisClient = client
	return client
}

// GetRedisClient returns the Redis client instance, nil when unavailable
func GetRedisClient() *redis.Client {
	return redisClient
}

// CloseRedis closes the Redis connection
func CloseRedis() {
	if redisClient != nil {
		redisClient.Close()
	}
}
