package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	Log             Log
	Upload          Upload
	OCR             OCR
	Extraction      Extraction
	RateLimit       RateLimit
	Redis           RedisConfig
}

// Log selects the slog handler.
type Log struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// Upload bounds accepted images and where they are kept.
type Upload struct {
	Dir      string
	MaxBytes int64
}

// OCR configures the tesseract engine and its guard.
type OCR struct {
	Lang             string
	PSM              int
	Timeout          time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

// Extraction points at an optional lexicon file and the licence categories
// printed on translation sheets.
type Extraction struct {
	LexiconFile string
	Categories  []string
}

// RateLimit sets per-client request budgets for each endpoint class.
type RateLimit struct {
	Disabled      bool
	ScanPerMin    int
	ExtractPerMin int
	Window        time.Duration
}

// RedisConfig holds Redis connection settings. An empty URL keeps rate
// limiting in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultCategories are the licence classes printed on sheets.
var DefaultCategories = []string{"A", "B", "C", "D", "E"}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            envString("DLSCAN_ADDR", ":8080"),
		ShutdownTimeout: envDuration("DLSCAN_SHUTDOWN_TIMEOUT", 10*time.Second),
		Log: Log{
			Level:  envString("DLSCAN_LOG_LEVEL", "info"),
			Format: envString("DLSCAN_LOG_FORMAT", "json"),
		},
		Upload: Upload{
			Dir:      envString("DLSCAN_UPLOAD_DIR", "./uploads"),
			MaxBytes: int64(envInt("DLSCAN_MAX_UPLOAD_BYTES", 10<<20)),
		},
		OCR: OCR{
			Lang:             envString("DLSCAN_OCR_LANG", "fra"),
			PSM:              envInt("DLSCAN_OCR_PSM", 6),
			Timeout:          envDuration("DLSCAN_OCR_TIMEOUT", 30*time.Second),
			FailureThreshold: envInt("DLSCAN_OCR_FAILURE_THRESHOLD", 5),
			Cooldown:         envDuration("DLSCAN_OCR_COOLDOWN", 30*time.Second),
		},
		Extraction: Extraction{
			LexiconFile: os.Getenv("DLSCAN_LEXICON_FILE"),
			Categories:  envList("DLSCAN_LICENSE_CATEGORIES", DefaultCategories),
		},
		RateLimit: RateLimit{
			Disabled:      os.Getenv("DLSCAN_RATE_LIMIT_DISABLED") == "true",
			ScanPerMin:    envInt("DLSCAN_RATE_LIMIT_SCAN", 20),
			ExtractPerMin: envInt("DLSCAN_RATE_LIMIT_EXTRACT", 120),
			Window:        time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt falls back to def for missing, malformed or non-positive values.
func envInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
