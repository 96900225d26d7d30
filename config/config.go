package config

import (
	"log"
	"os"
	"strconv"

	"github.com/OzanKEreal/EndlleesTube/pkg/constant"
)

const (
	DefaultPort          = "8080"
	DefaultUploadDir     = "uploads"
	DefaultVideoMaxBytes = int64(2) << 30 // 2 GiB
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	AccessTokenSecret  string
	RefreshTokenSecret string
	// RefreshHashKey keys the HMAC used to derive the refresh-token lookup
	// hash. Separate from the signing secrets so a leaked signing key does
	// not let an attacker forge store lookups.
	RefreshHashKey   string
	AccessExpiryMin  int
	RefreshExpiryMin int
	UploadDir        string
	VideoMaxBytes    int64
	CORSOrigins      string
}

func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", DefaultPort),
		DBURL:              mustGetEnv("DB_URL"),
		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),
		RefreshHashKey:     mustGetEnv("REFRESH_HASH_KEY"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TOKEN_EXPIRY", constant.DefaultAccessExpiryMin),
		RefreshExpiryMin:   getEnvAsInt("REFRESH_TOKEN_EXPIRY", constant.DefaultRefreshExpiryMin),
		UploadDir:          getEnv("UPLOAD_DIR", DefaultUploadDir),
		VideoMaxBytes:      getEnvAsInt64("VIDEO_MAX_BYTES", DefaultVideoMaxBytes),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
	}
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, no permissive defaults).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
