package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Port          string `yaml:"port"`
	StorageDriver string `yaml:"storage_driver"`
	DatabaseURL   string `yaml:"database_url"`
	RedisURL      string `yaml:"redis_url"`

	JWTSecret     string `yaml:"jwt_secret"`
	JWTIssuer     string `yaml:"jwt_issuer"`
	JWTTTLMinutes int    `yaml:"jwt_ttl_minutes"`

	ResetTokenTTLMinutes int    `yaml:"reset_token_ttl_minutes"`
	ResetLinkBase        string `yaml:"reset_link_base"`

	// login and forgot-password attempts per client per window
	RateLimitAttempts      int `yaml:"rate_limit_attempts"`
	RateLimitWindowSeconds int `yaml:"rate_limit_window_seconds"`

	UploadDir      string `yaml:"upload_dir"`
	UploadMaxBytes int64  `yaml:"upload_max_bytes"`
	FileStore      string `yaml:"file_store"`
	B2AccountID    string `yaml:"b2_account_id"`
	B2AppKey       string `yaml:"b2_app_key"`
	B2Bucket       string `yaml:"b2_bucket"`

	AIProvider       string `yaml:"ai_provider"`
	AITimeoutSeconds int    `yaml:"ai_timeout_seconds"`

	OpenRouterAPIKey   string `yaml:"openrouter_api_key"`
	OpenRouterBase     string `yaml:"openrouter_base"`
	OpenRouterModel    string `yaml:"openrouter_model"`
	OpenRouterAppTitle string `yaml:"openrouter_app_title"`
	OpenRouterReferer  string `yaml:"openrouter_referer"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	// per-dependency readiness ping
	ReadyTimeoutSeconds int `yaml:"ready_timeout_seconds"`

	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
	CORSOrigins []string `yaml:"cors_origins"`

	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:                   "8080",
		StorageDriver:          "postgres",
		JWTSecret:              "dev-secret-change",
		JWTIssuer:              "jobportal",
		JWTTTLMinutes:          60 * 24,
		ResetTokenTTLMinutes:   30,
		ResetLinkBase:          "/reset-password?token=",
		RateLimitAttempts:      10,
		RateLimitWindowSeconds: 60,
		UploadDir:              "uploads",
		UploadMaxBytes:         5 << 20,
		FileStore:              "local",
		AIProvider:             "openrouter",
		AITimeoutSeconds:       30,
		OpenRouterModel:        "qwen/qwen2.5-32b-instruct",
		OpenRouterAppTitle:     "jobportal",
		GeminiModel:            "gemini-2.5-flash",
		ReadyTimeoutSeconds:    1,
		LogLevel:               "info",
		LogFormat:              "json",
		CORSOrigins:            []string{"*"},
	}
}

// Load reads configuration: defaults, then CONFIG_FILE (yaml) if set,
// then environment variables (optionally from a .env file).
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", cfg.StorageDriver)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTTTLMinutes = getEnvInt("JWT_TTL_MINUTES", cfg.JWTTTLMinutes)
	cfg.ResetTokenTTLMinutes = getEnvInt("RESET_TOKEN_TTL_MINUTES", cfg.ResetTokenTTLMinutes)
	cfg.ResetLinkBase = getEnv("RESET_LINK_BASE", cfg.ResetLinkBase)
	cfg.RateLimitAttempts = getEnvInt("RATE_LIMIT_ATTEMPTS", cfg.RateLimitAttempts)
	cfg.RateLimitWindowSeconds = getEnvInt("RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimitWindowSeconds)
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.UploadMaxBytes = int64(getEnvInt("UPLOAD_MAX_BYTES", int(cfg.UploadMaxBytes)))
	cfg.FileStore = getEnv("FILE_STORE", cfg.FileStore)
	cfg.B2AccountID = getEnv("B2_ACCOUNT_ID", cfg.B2AccountID)
	cfg.B2AppKey = getEnv("B2_APP_KEY", cfg.B2AppKey)
	cfg.B2Bucket = getEnv("B2_BUCKET", cfg.B2Bucket)
	cfg.AIProvider = getEnv("AI_PROVIDER", cfg.AIProvider)
	cfg.AITimeoutSeconds = getEnvInt("AI_TIMEOUT_SECONDS", cfg.AITimeoutSeconds)
	cfg.ReadyTimeoutSeconds = getEnvInt("READY_TIMEOUT_SECONDS", cfg.ReadyTimeoutSeconds)
	cfg.OpenRouterAPIKey = getEnv("OPENROUTER_API_KEY", cfg.OpenRouterAPIKey)
	cfg.OpenRouterBase = getEnv("OPENROUTER_BASE_URL", cfg.OpenRouterBase)
	cfg.OpenRouterModel = getEnv("OPENROUTER_MODEL", cfg.OpenRouterModel)
	cfg.OpenRouterAppTitle = getEnv("OPENROUTER_APP_TITLE", cfg.OpenRouterAppTitle)
	cfg.OpenRouterReferer = getEnv("OPENROUTER_REFERER", cfg.OpenRouterReferer)
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
