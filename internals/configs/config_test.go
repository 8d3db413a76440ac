package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormLogger "gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RAILWAY_ENVIRONMENT", "test")
	t.Setenv("FRONTEND_URL", "https://app.zionhub.test/")
	t.Setenv("TOKEN_BLACKLIST_TTL_DAYS", "3")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ORIGINS", " https://a.test , ,https://b.test")
	t.Setenv("STORE_DRIVER", "MEMORY")

	cfg := Load()

	assert.Equal(t, "https://app.zionhub.test", cfg.FrontendURL)
	assert.Equal(t, 72*time.Hour, cfg.TokenBlacklistTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ZH_PRESENT", "")
	assert.Equal(t, "", GetEnv("ZH_PRESENT", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ZH_SURELY_MISSING_KEY", "fallback"))
	assert.Equal(t, "", GetEnv("ZH_SURELY_MISSING_KEY"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want gormLogger.LogLevel
	}{
		{"silent", gormLogger.Silent},
		{"ERROR", gormLogger.Error},
		{"info", gormLogger.Info},
		{"", gormLogger.Warn},
		{"verbose", gormLogger.Warn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}
