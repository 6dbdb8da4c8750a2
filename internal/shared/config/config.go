package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Registry  RegistryConfig
	KurrentDB KurrentDBConfig
	Auth      AuthConfig
	AI        AIConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// RegistryConfig holds configuration for the legacy clinic registry
// (SQL Server), consulted as an additional doctor-record source.
type RegistryConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Table    string
}

// KurrentDBConfig holds configuration for KurrentDB (EventStoreDB).
type KurrentDBConfig struct {
	Host     string
	Port     int
	Insecure bool
	Username string
	Password string
}

type AuthConfig struct {
	JWTSecret string
}

// AIConfig holds configuration for the Azure OpenAI deployment used by the
// triage and challenge pipelines. Placeholder values are treated as
// "not configured" and force the deterministic fallback path.
type AIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Timeout    time.Duration
}

// placeholder sentinels shipped in example .env files
var placeholderKeys = []string{"PASTE_HERE", "xxxxxxxx"}

// Configured reports whether the AI settings point at a real deployment.
func (a AIConfig) Configured() bool {
	if a.APIKey == "" || a.Endpoint == "" || a.Deployment == "" {
		return false
	}
	for _, p := range placeholderKeys {
		if a.APIKey == p {
			return false
		}
	}
	if strings.Contains(a.Endpoint, "PASTE_HERE") || strings.Contains(a.Deployment, "PASTE_HERE") {
		return false
	}
	return true
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "lifeline"),
			Password: getEnv("DB_PASSWORD", "lifeline"),
			Database: getEnv("DB_NAME", "lifeline"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Registry: RegistryConfig{
			Enabled:  getEnvBool("REGISTRY_ENABLED", false),
			Host:     getEnv("REGISTRY_HOST", "localhost"),
			Port:     getEnvInt("REGISTRY_PORT", 1433),
			User:     getEnv("REGISTRY_USER", ""),
			Password: getEnv("REGISTRY_PASSWORD", ""),
			Database: getEnv("REGISTRY_DB", "cliniclegacy"),
			SSLMode:  getEnv("REGISTRY_SSLMODE", "disable"),
			Table:    getEnv("REGISTRY_TABLE", "dbo.Doctors"),
		},
		KurrentDB: KurrentDBConfig{
			Host:     getEnv("KURRENTDB_HOST", "localhost"),
			Port:     getEnvInt("KURRENTDB_PORT", 2113),
			Insecure: getEnvBool("KURRENTDB_INSECURE", true),
			Username: getEnv("KURRENTDB_USERNAME", ""),
			Password: getEnv("KURRENTDB_PASSWORD", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-prod"),
		},
		AI: AIConfig{
			Endpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:     getEnv("AZURE_OPENAI_KEY", ""),
			Deployment: getEnv("AZURE_OPENAI_DEPLOYMENT", ""),
			APIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2024-10-21"),
			Timeout:    time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
