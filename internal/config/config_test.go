package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := FromEnv(env(map[string]string{"DB_DSN": "postgres://localhost/nau"}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":3256", cfg.HTTPAddr)
	assert.Equal(t, "Europe/Kyiv", cfg.Timezone)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, LecturerSourceDB, cfg.LecturerSource)
	assert.Equal(t, "0 19 * * *", cfg.DigestCron)
	assert.Equal(t, 20.0, cfg.DigestRate)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "*", cfg.AllowOrigins)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, "Europe/Kyiv", cfg.Location().String())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := FromEnv(env(map[string]string{
		"DB_DSN":          "postgres://localhost/nau",
		"ENV":             "production",
		"HTTP_ADDR":       ":8080",
		"TIMEZONE":        "UTC",
		"CACHE_TTL":       "30s",
		"DIGEST_CRON":     "off",
		"DIGEST_RATE":     "5",
		"LECTURER_SOURCE": "directory",
		"NAU_API_URL":     "https://api.example.org",
		"CORS_ORIGINS":    "https://nau.example.org",
		"RATE_LIMIT":      "120",
	}))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Empty(t, cfg.DigestCron)
	assert.Equal(t, 5.0, cfg.DigestRate)
	assert.Equal(t, LecturerSourceDirectory, cfg.LecturerSource)
	assert.Equal(t, "https://nau.example.org", cfg.AllowOrigins)
	assert.Equal(t, 120, cfg.RateLimit)
}

func TestFromEnv_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values map[string]string
	}{
		{"missing dsn", map[string]string{}},
		{"bad ttl", map[string]string{"DB_DSN": "x", "CACHE_TTL": "soon"}},
		{"bad rate", map[string]string{"DB_DSN": "x", "DIGEST_RATE": "-1"}},
		{"unknown lecturer source", map[string]string{"DB_DSN": "x", "LECTURER_SOURCE": "ldap"}},
		{"directory without url", map[string]string{"DB_DSN": "x", "LECTURER_SOURCE": "directory"}},
		{"bad rate limit", map[string]string{"DB_DSN": "x", "RATE_LIMIT": "many"}},
		{"bad timezone", map[string]string{"DB_DSN": "x", "TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.values))
			assert.Error(t, err)
		})
	}
}
