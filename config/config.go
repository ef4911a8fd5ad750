package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config is the backend configuration, read from the environment after an
// optional .env file.
type Config struct {
	DatabaseDSN string
	AnonKey     string
	JWTSecret   string
	Port        string
	LogLevel    string
	SeedDemo    bool

	ReportLogoPath string
	Archive        ArchiveConfig
}

// ArchiveConfig selects where rendered PDF reports are copied.
type ArchiveConfig struct {
	Kind      string // local, gcs, s3 or none
	Dir       string
	GCSBucket string
	S3        S3Config
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var ErrMissingEnv = errors.New("missing required environment variable")

// Load reads the environment. A missing DB_DSN, API_ANON_KEY or JWT_SECRET
// is an error; the caller treats it as fatal.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		DatabaseDSN:    os.Getenv("DB_DSN"),
		AnonKey:        os.Getenv("API_ANON_KEY"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Port:           getenv("PORT", "8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		SeedDemo:       getbool("SEED_DEMO", false),
		ReportLogoPath: os.Getenv("REPORT_LOGO_PATH"),
		Archive: ArchiveConfig{
			Kind:      strings.ToLower(getenv("REPORT_STORAGE", "none")),
			Dir:       getenv("REPORT_DIR", "reports"),
			GCSBucket: os.Getenv("GCS_BUCKET"),
			S3: S3Config{
				Endpoint:  os.Getenv("S3_ENDPOINT"),
				AccessKey: os.Getenv("S3_ACCESS_KEY"),
				SecretKey: os.Getenv("S3_SECRET_KEY"),
				Bucket:    os.Getenv("S3_BUCKET"),
				UseSSL:    getbool("S3_USE_SSL", true),
			},
		},
	}

	var missing []string
	if cfg.DatabaseDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.AnonKey == "" {
		missing = append(missing, "API_ANON_KEY")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return cfg, nil
}

// Connect opens the PostgreSQL pool, runs the migrations and, when asked,
// seeds the demo catalogue.
func Connect(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrated")

	if cfg.SeedDemo {
		if err := SeedDemoData(db, log); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
