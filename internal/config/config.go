package config

import (
	"fmt"
	"os"
	"strconv"
)

// RedisConfig locates the key-value store holding all society records.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig locates the broker domain events are published to.
type KafkaConfig struct {
	Broker string
	Topic  string
}

// Config is the infrastructure configuration, read from the environment.
type Config struct {
	HTTPPort    int
	Redis       RedisConfig
	Kafka       KafkaConfig
	LogLevel    string
	LogFormat   string
	SocietyFile string
	ServiceName string
}

// Load reads infrastructure settings from the environment with defaults
// suitable for local development.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:  getEnv("KAFKA_TOPIC", "society.events"),
		},
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		SocietyFile: getEnv("SOCIETY_CONFIG", ""),
		ServiceName: "loan-society-service",
	}
}

// HTTPAddr returns the listen address for the HTTP server.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
