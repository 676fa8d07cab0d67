package config

import (
	"os"
	"time"
)

type Config struct {
	MongoURI  string
	RedisAddr string
	Port      string
	JWTSecret string
	TokenTTL  time.Duration
}

func Load() *Config {
	ttl := 2 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}

	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		RedisAddr: getEnv("REDIS_URI", "localhost:6379"),
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:  ttl,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
