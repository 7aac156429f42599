package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string

	STORE_DRIVER string
	SQLITE_PATH  string

	EDITOR_VARIANT     string
	PUBLISH_DELAY      time.Duration
	PUBLISH_RPS        float64
	PUBLISH_BURST      int
	PREVIEW_CACHE_SIZE int
	WORKSPACE_CACHE    int

	ORG_API_URL        string
	PUBLIC_BASE_DOMAIN string
)

// Conf holds the raw settings. The package-level values above are read from
// it by LoadEnv.
var Conf = newConf()

func newConf() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "data/site.db")
	v.SetDefault("EDITOR_VARIANT", "builder")
	v.SetDefault("PUBLISH_DELAY", "2000")
	v.SetDefault("PUBLISH_RPS", 0.2)
	v.SetDefault("PUBLISH_BURST", 3)
	v.SetDefault("PREVIEW_CACHE_SIZE", 256)
	v.SetDefault("WORKSPACE_CACHE", 1000)
	v.SetDefault("ORG_API_URL", "")
	v.SetDefault("PUBLIC_BASE_DOMAIN", "localhost")
	v.AutomaticEnv()
	return v
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = Conf.GetString("PORT")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = Conf.GetString("CORS_ORIGIN")

	STORE_DRIVER = Conf.GetString("STORE_DRIVER")
	switch STORE_DRIVER {
	case "memory", "sqlite":
		DB_URL = getEnv("DB_URL", "")
	case "postgres":
		DB_URL = mustEnv("DB_URL")
	default:
		log.Fatalf("Unknown STORE_DRIVER %q (want memory, sqlite or postgres)", STORE_DRIVER)
	}
	SQLITE_PATH = Conf.GetString("SQLITE_PATH")

	EDITOR_VARIANT = Conf.GetString("EDITOR_VARIANT")
	PUBLISH_DELAY, err = parseDelay(Conf.GetString("PUBLISH_DELAY"))
	if err != nil {
		log.Fatalf("Invalid PUBLISH_DELAY: %v", err)
	}
	PUBLISH_RPS = Conf.GetFloat64("PUBLISH_RPS")
	PUBLISH_BURST = Conf.GetInt("PUBLISH_BURST")
	PREVIEW_CACHE_SIZE = Conf.GetInt("PREVIEW_CACHE_SIZE")
	if PREVIEW_CACHE_SIZE <= 0 {
		PREVIEW_CACHE_SIZE = 256
	}
	WORKSPACE_CACHE = Conf.GetInt("WORKSPACE_CACHE")

	ORG_API_URL = Conf.GetString("ORG_API_URL")
	PUBLIC_BASE_DOMAIN = Conf.GetString("PUBLIC_BASE_DOMAIN")
}

// parseDelay reads a bare integer as milliseconds ("2000") and anything else
// as a Go duration ("2s", "1500ms").
func parseDelay(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(raw)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
