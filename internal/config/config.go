package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr      = ":8080"
	defaultJWTAccessTTL    = "12h"
	defaultSASExpiry       = "1h"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultLibraryPrefixes = "Shared Documents,Documents"
	defaultTableName       = "CustomerContent"
	defaultUploadContainer = "uploads"
)

// Config carries every runtime switch the services need. Handlers never
// read the environment directly; main loads this once and passes it to
// constructors.
type Config struct {
	AppEnv     string
	ListenAddr string

	// Relational store (CMS content).
	DatabaseURL string

	// Admin auth.
	JWTSecret         string
	JWTAccessTTL      time.Duration
	AdminPasswordHash string

	// Azure Table Storage (access-code registry).
	TablesServiceURL string
	TableName        string

	// Azure Blob Storage (upload SAS issuance).
	StorageAccountName string
	StorageAccountKey  string
	UploadContainer    string
	SASExpiry          time.Duration

	// Microsoft Graph (media gallery).
	GraphTenantID     string
	GraphClientID     string
	GraphClientSecret string
	GraphSiteID       string
	GraphDriveID      string
	// Folder listed when no access code is supplied.
	DefaultFolderPath string
	// Library-root prefixes tried by the path resolver, in order.
	LibraryPrefixes []string

	// Extra CORS origins beyond the localhost dev defaults.
	CORSAllowedOrigins []string
}

// Load reads .env (if present) and the process environment into a
// Config. Validation of prod-sensitive defaults happens here so a
// misconfigured deployment fails at startup, not on first request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.AdminPasswordHash = strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH"))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.SASExpiry, err = parseDurationEnv("SAS_EXPIRY", defaultSASExpiry)
	if err != nil {
		return nil, err
	}

	cfg.TablesServiceURL = strings.TrimSpace(os.Getenv("TABLES_SERVICE_URL"))
	cfg.TableName = getEnv("TABLE_NAME", defaultTableName)

	cfg.StorageAccountName = strings.TrimSpace(os.Getenv("STORAGE_ACCOUNT_NAME"))
	cfg.StorageAccountKey = strings.TrimSpace(os.Getenv("STORAGE_ACCOUNT_KEY"))
	cfg.UploadContainer = getEnv("UPLOAD_CONTAINER", defaultUploadContainer)

	cfg.GraphTenantID = strings.TrimSpace(os.Getenv("GRAPH_TENANT_ID"))
	cfg.GraphClientID = strings.TrimSpace(os.Getenv("GRAPH_CLIENT_ID"))
	cfg.GraphClientSecret = strings.TrimSpace(os.Getenv("GRAPH_CLIENT_SECRET"))
	cfg.GraphSiteID = strings.TrimSpace(os.Getenv("GRAPH_SITE_ID"))
	cfg.GraphDriveID = strings.TrimSpace(os.Getenv("GRAPH_DRIVE_ID"))
	cfg.DefaultFolderPath = strings.TrimSpace(os.Getenv("GRAPH_DEFAULT_FOLDER"))
	cfg.LibraryPrefixes = splitList(getEnv("GRAPH_LIBRARY_PREFIXES", defaultLibraryPrefixes))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.TablesServiceURL == "" {
		return fmt.Errorf("TABLES_SERVICE_URL is required")
	}
	if c.GraphTenantID == "" || c.GraphClientID == "" || c.GraphClientSecret == "" {
		return fmt.Errorf("GRAPH_TENANT_ID, GRAPH_CLIENT_ID and GRAPH_CLIENT_SECRET are required")
	}
	if c.GraphSiteID == "" || c.GraphDriveID == "" {
		return fmt.Errorf("GRAPH_SITE_ID and GRAPH_DRIVE_ID are required")
	}
	if isProdLike(c.AppEnv) {
		if isEmptyOrDefault(c.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if c.AdminPasswordHash == "" {
			return fmt.Errorf("in prod/release ADMIN_PASSWORD_HASH must be set")
		}
	}
	return nil
}

// ProdLike reports whether env names a production-grade deployment.
func ProdLike(env string) bool {
	return isProdLike(env)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
