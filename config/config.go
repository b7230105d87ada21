package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DBDriver           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSSLMode          string
	SQLitePath         string
	JWTSecret          string
	JWTTTL             time.Duration
	Port               string
	GinMode            string
	CORSAllowedOrigins []string
	RedisURL           string
	MetricsInterval    time.Duration
	StatusInterval     time.Duration
	PageSize           int
	Version            string
	PublicHost         string
}

func Load() *Config {
	return &Config{
		DBDriver:           getEnv("DB_DRIVER", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBName:             getEnv("DB_NAME", "myapp"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		SQLitePath:         getEnv("SQLITE_PATH", "myapp.db"),
		JWTSecret:          getEnv("JWT_SECRET", "default-secret"),
		JWTTTL:             getEnvDuration("JWT_TTL", 24*time.Hour),
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		RedisURL:           getEnv("REDIS_URL", ""),
		MetricsInterval:    getEnvDuration("METRICS_PUSH_INTERVAL", 5*time.Second),
		StatusInterval:     getEnvDuration("STATUS_PUSH_INTERVAL", 10*time.Second),
		PageSize:           getEnvInt("PAGE_SIZE", 10),
		Version:            getEnv("APP_VERSION", "1.0.0"),
		PublicHost:         getEnv("PUBLIC_HOST", "localhost:8080"),
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

// getEnvDuration accepts Go duration strings ("5s") or a bare number of seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
