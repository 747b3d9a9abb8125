// Env loader
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv             string
	Port               string
	LogLevel           string
	DBDriver           string
	DBHost             string
	DBPort             string
	DBName             string
	DBUser             string
	DBPassword         string
	DBSchema           string
	SQLitePath         string
	DBBootstrap        bool
	CorsAllowedOrigins []string
}

// LoadConfig loads environment variables from the given env files, or from
// the file matching APP_ENV when none are given.
func LoadConfig(envFiles ...string) *Config {

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err == nil {
			fmt.Println("Loaded", strings.Join(envFiles, ", "))
		}
	} else {
		switch GetAppEnv() {
		case "production":
			if err := godotenv.Load(".env.production"); err == nil {
				fmt.Println("Loaded .env.production")
			}
		default:
			if err := godotenv.Load(".env.development"); err == nil {
				fmt.Println("Loaded .env.development")
			}
		}
	}

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBDriver:           getEnv("DB_DRIVER", "postgres"),
		DBHost:             getEnv("BLUEPRINT_DB_HOST", "localhost"),
		DBPort:             getEnv("BLUEPRINT_DB_PORT", "5432"),
		DBName:             getEnv("BLUEPRINT_DB_DATABASE", "bible"),
		DBUser:             getEnv("BLUEPRINT_DB_USERNAME", "postgres"),
		DBPassword:         getEnv("BLUEPRINT_DB_PASSWORD", ""),
		DBSchema:           getEnv("BLUEPRINT_DB_SCHEMA", "bible"),
		SQLitePath:         getEnv("SQLITE_PATH", "bible.db"),
		DBBootstrap:        getEnvBool("DB_BOOTSTRAP", false),
		CorsAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"https://*", "http://*"}),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvList splits a comma separated value, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
