package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort          string
	AppMode          string
	StoreDriver      string
	DBHost           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPort           string
	SessionSecret    string
	SessionTTLHours  int
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	AuthRateLimit    int
	S3Region         string
	S3Bucket         string
	S3AccessKey      string
	S3SecretKey      string
	S3Endpoint       string
	S3PublicBase     string
	ChatStrictAccess bool
	SeedDemoData     bool
	CORSOrigins      []string
}

// DefaultSessionSecret signs sessions when SESSION_SECRET is unset. It is
// only acceptable outside release mode.
const DefaultSessionSecret = "change-me"

var ErrDefaultSessionSecret = errors.New("SESSION_SECRET must be set in release mode")

var (
	StoreDriverPostgres = "postgres"
	StoreDriverMySQL    = "mysql"
	StoreDriverMemory   = "memory"
)

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:          getEnv("APP_PORT", "5000"),
		AppMode:          getEnv("APP_MODE", "debug"),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "neighborhood_help_portal"),
		DBPort:           getEnv("DB_PORT", "5432"),
		SessionSecret:    getEnv("SESSION_SECRET", DefaultSessionSecret),
		SessionTTLHours:  getEnvAsInt("SESSION_TTL_HOURS", 24*7),
		RedisHost:        getEnv("REDIS_HOST", ""),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		AuthRateLimit:    getEnvAsInt("AUTH_RATE_LIMIT", 20),
		S3Region:         getEnv("S3_REGION", ""),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3PublicBase:     getEnv("S3_PUBLIC_BASE", ""),
		ChatStrictAccess: getEnvAsBool("CHAT_STRICT_ACCESS", false),
		SeedDemoData:     getEnvAsBool("SEED_DEMO_DATA", false),
		CORSOrigins:      getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}
}

// DefaultSessionSecretInUse reports whether sessions would be signed with
// the built-in secret.
func (c *Config) DefaultSessionSecretInUse() bool {
	return c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret
}

// Validate rejects settings that are unsafe for a release deployment.
func (c *Config) Validate() error {
	if c.AppMode == "release" && c.DefaultSessionSecretInUse() {
		return ErrDefaultSessionSecret
	}
	return nil
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// S3Enabled reports whether attachment uploads can be presigned.
func (c *Config) S3Enabled() bool {
	return c.S3Region != "" && c.S3Bucket != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
