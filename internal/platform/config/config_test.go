package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DLSCAN_ADDR", "DLSCAN_OCR_PSM", "DLSCAN_LICENSE_CATEGORIES", "REDIS_URL", "DLSCAN_RATE_LIMIT_DISABLED"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "fra", cfg.OCR.Lang)
	assert.Equal(t, 6, cfg.OCR.PSM)
	assert.Equal(t, 30*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, DefaultCategories, cfg.Extraction.Categories)
	assert.Empty(t, cfg.Redis.URL)
	assert.False(t, cfg.RateLimit.Disabled)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DLSCAN_ADDR", ":9090")
	t.Setenv("DLSCAN_OCR_PSM", "4")
	t.Setenv("DLSCAN_OCR_TIMEOUT", "5s")
	t.Setenv("DLSCAN_LICENSE_CATEGORIES", "A, B ,,BE")
	t.Setenv("DLSCAN_RATE_LIMIT_DISABLED", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 4, cfg.OCR.PSM)
	assert.Equal(t, 5*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, []string{"A", "B", "BE"}, cfg.Extraction.Categories)
	assert.True(t, cfg.RateLimit.Disabled)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DLSCAN_OCR_PSM", "six")
	t.Setenv("DLSCAN_MAX_UPLOAD_BYTES", "-1")
	t.Setenv("DLSCAN_OCR_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, 6, cfg.OCR.PSM)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 30*time.Second, cfg.OCR.Timeout)
}
