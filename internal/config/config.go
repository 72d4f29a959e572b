package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	Security    SecurityConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	Upload      UploadConfig
	Obfuscation ObfuscationConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns   int
	ConnectTimeout time.Duration // how long Open keeps retrying an unreachable server
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds security-related settings
type SecurityConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	SessionSigningKey string // optional; enables signed session cookies
	SecureCookies     bool
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// UploadConfig selects and configures the image upload provider.
type UploadConfig struct {
	Provider string // "", "cloudinary" or "s3"

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	S3Bucket    string
	S3Region    string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // optional; S3-compatible endpoint such as MinIO
}

// ObfuscationConfig toggles the hidden-prefix route map.
type ObfuscationConfig struct {
	Enabled bool
	MapPath string
}

// Load reads configuration from config/local.env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := &Config{}

	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if err := cfg.loadSecurity(); err != nil {
		return nil, fmt.Errorf("load security config: %w", err)
	}
	cfg.loadCORS()
	cfg.loadLogging()
	cfg.loadUpload()
	cfg.loadObfuscation()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadDatabase() error {
	maxOpen, err := strconv.Atoi(getEnvOrDefault("DB_MAX_OPEN_CONNS", "10"))
	if err != nil {
		return fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}
	c.Database.MaxOpenConns = maxOpen

	timeout, err := time.ParseDuration(getEnvOrDefault("DB_CONNECT_TIMEOUT", "30s"))
	if err != nil {
		return fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}
	c.Database.ConnectTimeout = timeout

	c.Database.URL = os.Getenv("DATABASE_URL")
	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	c.Database.Port = port

	if c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
	return nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadSecurity() error {
	c.Security.JWTSecret = os.Getenv("JWT_SECRET")
	c.Security.SessionSigningKey = os.Getenv("SESSION_SIGNING_KEY")
	c.Security.SecureCookies = getEnvBool("SECURE_COOKIES", false)

	ttl, err := time.ParseDuration(getEnvOrDefault("TOKEN_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	c.Security.TokenTTL = ttl
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		c.CORS.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
		return
	}

	var origins []string
	for _, origin := range strings.Split(originsEnv, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.CORS.AllowedOrigins = origins
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

func (c *Config) loadUpload() {
	c.Upload.Provider = strings.ToLower(os.Getenv("UPLOAD_PROVIDER"))

	c.Upload.CloudinaryCloudName = os.Getenv("CLOUDINARY_CLOUD_NAME")
	c.Upload.CloudinaryAPIKey = os.Getenv("CLOUDINARY_API_KEY")
	c.Upload.CloudinaryAPISecret = os.Getenv("CLOUDINARY_API_SECRET")
	c.Upload.CloudinaryFolder = getEnvOrDefault("CLOUDINARY_FOLDER", "listings")

	c.Upload.S3Bucket = os.Getenv("S3_BUCKET")
	c.Upload.S3Region = getEnvOrDefault("S3_REGION", "us-east-1")
	c.Upload.S3Prefix = getEnvOrDefault("S3_PREFIX", "listings/")
	c.Upload.S3AccessKey = os.Getenv("S3_ACCESS_KEY_ID")
	c.Upload.S3SecretKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	c.Upload.S3Endpoint = os.Getenv("S3_ENDPOINT")
}

func (c *Config) loadObfuscation() {
	c.Obfuscation.Enabled = getEnvBool("ROUTE_OBFUSCATION", false)
	c.Obfuscation.MapPath = getEnvOrDefault("ROUTE_MAP_PATH", "config/routes.toml")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var problems []string

	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	if len(c.Security.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 characters")
	}
	if c.Security.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	switch c.Upload.Provider {
	case "":
	case "cloudinary":
		if c.Upload.CloudinaryCloudName == "" || c.Upload.CloudinaryAPIKey == "" || c.Upload.CloudinaryAPISecret == "" {
			problems = append(problems, "CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for UPLOAD_PROVIDER=cloudinary")
		}
	case "s3":
		if c.Upload.S3Bucket == "" {
			problems = append(problems, "S3_BUCKET is required for UPLOAD_PROVIDER=s3")
		}
	default:
		problems = append(problems, "UPLOAD_PROVIDER must be one of: cloudinary, s3")
	}

	if c.Obfuscation.Enabled && c.Obfuscation.MapPath == "" {
		problems = append(problems, "ROUTE_MAP_PATH is required when ROUTE_OBFUSCATION is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(os.Getenv("ENV")) == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
