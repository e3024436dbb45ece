package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store      string // "file" | "redis" | "memory"
	DataFile   string // path of the JSON file used by the file backend
	StorageKey string // name of the persisted blob (redis key suffix)

	ImportFile     string        // optional YAML file of favorites to import (empty = disabled)
	ImportInterval time.Duration // interval to re-read the import file (default: 1h)
	FlushInterval  time.Duration // interval to retry failed saves (default: 30s)

	// Redis, only read when Store == "redis"
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // allowed CORS origins (default: *)

	RateBurst  int // token bucket size for mutating endpoints
	RatePerMin int // tokens refilled per minute
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; variables already set win.
func Load() *Config {
	loadDotEnv(getenv("FAVTUBE_ENV_FILE", ".env"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("FAVTUBE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("FAVTUBE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("FAVTUBE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("FAVTUBE_PRETTY_LOG", true),

		// Storage
		Store:      strings.ToLower(getenv("FAVTUBE_STORE", StoreFile)),
		DataFile:   getenv("FAVTUBE_DATA_FILE", "./favorites.json"),
		StorageKey: getenv("FAVTUBE_STORAGE_KEY", "yt_favorites"),

		// Background jobs
		ImportFile:     getenv("FAVTUBE_IMPORT_FILE", ""), // Optional, empty = import disabled
		ImportInterval: mustDuration("FAVTUBE_IMPORT_INTERVAL", time.Hour),
		FlushInterval:  mustDuration("FAVTUBE_FLUSH_INTERVAL", 30*time.Second),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("FAVTUBE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("FAVTUBE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("FAVTUBE_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("FAVTUBE_CORS_ORIGINS", "*")),

		RateBurst:  getenvInt("FAVTUBE_RATE_BURST", 20),
		RatePerMin: getenvInt("FAVTUBE_RATE_PER_MIN", 60),
	}

	switch cfg.Store {
	case StoreFile, StoreMemory:
	case StoreRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: FAVTUBE_STORE must be one of file, redis, memory (got %q)", cfg.Store))
	}

	if cfg.RateBurst <= 0 || cfg.RatePerMin <= 0 {
		panic("❌ FATAL: FAVTUBE_RATE_BURST and FAVTUBE_RATE_PER_MIN must be > 0")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("FAVTUBE_REDIS_ADDR")
	cfg.RedisUser = getenv("FAVTUBE_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("FAVTUBE_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("FAVTUBE_REDIS_PASSWORD", "")
	cfg.RedisDB = requireEnvInt("FAVTUBE_REDIS_DB")
	cfg.RedisDT = mustDuration("FAVTUBE_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("FAVTUBE_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("FAVTUBE_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("FAVTUBE_REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("FAVTUBE_REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("FAVTUBE_REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("FAVTUBE_REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("FAVTUBE_REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("FAVTUBE_REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: FAVTUBE_REDIS_PASSWORD is required when FAVTUBE_REDIS_PASSWORD_REQUIRED=true")
	}
}

// loadDotEnv applies path if it exists. A missing file is fine, a broken one is not.
func loadDotEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		panic(fmt.Sprintf("❌ FATAL: failed to load env file %s: %v", path, err))
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
