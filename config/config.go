package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr   string
	KafkaBroker string

	JWTSecret string

	EmailHost string
	EmailPort int
	EmailUser string
	EmailPass string
	EmailFrom string

	ReceiptsDir string
}

func Load() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("EMAIL_PORT", "587"))
	if err != nil {
		port = 587
	}

	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "airenadb"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),

		JWTSecret: getEnv("JWT_SECRET", "secret"),

		EmailHost: getEnv("EMAIL_HOST", "localhost"),
		EmailPort: port,
		EmailUser: getEnv("EMAIL_USER", ""),
		EmailPass: getEnv("EMAIL_PASS", ""),
		EmailFrom: getEnv("EMAIL_FROM", "no-reply@airena.io"),

		ReceiptsDir: getEnv("RECEIPTS_DIR", "uploads/receipts"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
