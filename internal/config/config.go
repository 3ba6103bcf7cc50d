package config

import (
	"os"
	"strconv"
	"time"
)

// Backend selects which record store serves the collection.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config is the static configuration bundle for one server process. It is
// loaded once in main and passed to constructors explicitly; nothing reads
// the environment after startup.
type Config struct {
	Port          string
	SessionSecret string
	StaticDir     string

	// Record store backend selection.
	StoreBackend string
	// Local backend: postgres DSN wins when set, sqlite file otherwise.
	DatabaseURL string
	SQLitePath  string

	// Remote backend.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Collection    string

	// Blob storage for cover images.
	BlobEndpoint string
	BlobToken    string

	// Per-operation timeout so a stalled backend fails instead of hanging.
	OpTimeout time.Duration
}

// Load reads the configuration from the environment with local-dev fallbacks.
func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),
		StaticDir:     getenv("STATIC_DIR", "./web/static"),
		StoreBackend:  getenv("STORE_BACKEND", BackendLocal),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getenv("SQLITE_PATH", "data/tintaku.db"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvInt("REDIS_DB", 0),
		Collection:    getenv("REMOTE_COLLECTION", "cerpen"),
		BlobEndpoint:  os.Getenv("BLOB_ENDPOINT"),
		BlobToken:     os.Getenv("BLOB_TOKEN"),
		OpTimeout:     time.Duration(getenvInt("OP_TIMEOUT_SECONDS", 5)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
