package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "pg-secret")

	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "appointy"
user = "appointy"

[redis]
driver = "memory"

[booking]
holidays = ["2025-12-25"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, 30, cfg.Booking.MaxAdvanceDays)
	assert.Equal(t, []string{"2025-12-25"}, cfg.Booking.Holidays)
	assert.Contains(t, cfg.Database.DSN(), "password=pg-secret")
	assert.Contains(t, cfg.Database.DSN(), "sslmode=disable")

	day, err := cfg.Booking.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing secret",
			body: "[database]\nhost = \"h\"\ndbname = \"d\"\n[redis]\ndriver = \"memory\"\n",
		},
		{
			name: "unknown kv driver",
			body: "[database]\nhost = \"h\"\ndbname = \"d\"\n[redis]\ndriver = \"etcd\"\n[session]\nsecret = \"s\"\n",
		},
		{
			name: "bad closed day",
			body: "[database]\nhost = \"h\"\ndbname = \"d\"\n[redis]\ndriver = \"memory\"\n[session]\nsecret = \"s\"\n[booking]\nclosed_day = \"funday\"\n",
		},
		{
			name: "window inverted",
			body: "[database]\nhost = \"h\"\ndbname = \"d\"\n[redis]\ndriver = \"memory\"\n[session]\nsecret = \"s\"\n[booking]\nmin_advance_days = 10\nmax_advance_days = 5\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "")
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
