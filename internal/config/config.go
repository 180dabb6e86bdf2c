package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Источники данных о преподавателях
const (
	LecturerSourceDB        = "db"
	LecturerSourceDirectory = "directory"
)

type Config struct {
	Environment    string
	DBDSN          string
	HTTPAddr       string
	Timezone       string
	MigrationsPath string
	TelegramToken  string

	JWTSecret   string
	JWTAudience string
	JWTIssuer   string

	NAUAPIURL   string
	NAUAPIToken string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	LecturerSource string

	DigestCron string
	DigestRate float64

	AllowOrigins string
	RateLimit    int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Environment:    getenv("ENV"),
		DBDSN:          getenv("DB_DSN"),
		HTTPAddr:       getenv("HTTP_ADDR"),
		Timezone:       getenv("TIMEZONE"),
		MigrationsPath: getenv("MIGRATIONS_PATH"),
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		JWTSecret:      getenv("JWT_SECRET"),
		JWTAudience:    getenv("JWT_AUDIENCE"),
		JWTIssuer:      getenv("JWT_ISSUER"),
		NAUAPIURL:      getenv("NAU_API_URL"),
		NAUAPIToken:    getenv("NAU_API_TOKEN"),
		RedisAddr:      getenv("REDIS_ADDR"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		LecturerSource: getenv("LECTURER_SOURCE"),
		AllowOrigins:   getenv("CORS_ORIGINS"),
		DigestCron:     "0 19 * * *",
		DigestRate:     20,
		CacheTTL:       10 * time.Minute,
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":3256"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Europe/Kyiv"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}
	if cfg.LecturerSource == "" {
		cfg.LecturerSource = LecturerSourceDB
	}
	switch v := getenv("DIGEST_CRON"); v {
	case "":
	case "off":
		cfg.DigestCron = ""
	default:
		cfg.DigestCron = v
	}

	if v := getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	if v := getenv("DIGEST_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse DIGEST_RATE: %w", err)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("DIGEST_RATE must be positive, got %v", rate)
		}
		cfg.DigestRate = rate
	}

	if v := getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("RATE_LIMIT must be a non-negative integer, got %q", v)
		}
		cfg.RateLimit = limit
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.LecturerSource != LecturerSourceDB && cfg.LecturerSource != LecturerSourceDirectory {
		return nil, fmt.Errorf("unknown LECTURER_SOURCE %q", cfg.LecturerSource)
	}
	if cfg.LecturerSource == LecturerSourceDirectory && cfg.NAUAPIURL == "" {
		return nil, fmt.Errorf("NAU_API_URL is required for LECTURER_SOURCE=directory")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("load TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Location часовой пояс учебного заведения
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
