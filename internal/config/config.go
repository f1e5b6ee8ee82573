package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	Log      string
	LogLevel string
	Env      string // dev|prod

	S3Endpoint       string
	S3Region         string
	S3AccessKey      string
	S3SecretKey      string
	S3ForcePathStyle bool

	DefaultBucket string
	IndexDir      string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port: def(os.Getenv("PORT"), "8080"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3Region:         def(os.Getenv("S3_REGION"), "us-east-1"),
		S3AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:      os.Getenv("S3_SECRET_KEY"),
		S3ForcePathStyle: strings.ToLower(def(os.Getenv("S3_FORCE_PATH_STYLE"), "true")) == "true",

		DefaultBucket: def(os.Getenv("DEFAULT_BUCKET"), "default-bucket"),
		IndexDir:      def(os.Getenv("INDEX_DIR"), "index-data"),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: хранилище сконфигурировано наполовину
	if c.S3Endpoint != "" && (c.S3AccessKey == "" || c.S3SecretKey == "") {
		return nil, fmt.Errorf("incomplete S3 config (S3_ACCESS_KEY/S3_SECRET_KEY)")
	}

	if c.S3Endpoint == "" {
		warnings = append(warnings, "S3_ENDPOINT is empty, using in-memory object storage")
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	return warnings, nil
}
