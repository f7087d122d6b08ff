package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faceframe.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("  ")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "data", cfg.Content.Dir)
	assert.True(t, cfg.Content.Watch)
	assert.Equal(t, "public", cfg.Assets.Dir)
	assert.Equal(t, 5*time.Second, cfg.Contact.Timeout)
	assert.Empty(t, cfg.Contact.RelayURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 960, cfg.Preview.Width)
	assert.Equal(t, 640, cfg.Preview.Height)
}

func TestLoad_OverridesAndTrims(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "  0.0.0.0:9000  "
read_timeout = "3s"
shutdown_timeout = "1500ms"

[content]
dir = "catalog"
watch = false

[assets]
dir = "/srv/images"

[contact]
relay_url = " https://relay.example.com/send "
api_key = "secret"
recipient = "desk@example.com"
timeout = "2s"

[log]
level = "DEBUG"
format = "console"

[preview]
width = 1280
label_style = "Elegant"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, defaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Server.ShutdownTimeout)
	assert.Equal(t, filepath.Join(base, "catalog"), cfg.Content.Dir)
	assert.False(t, cfg.Content.Watch)
	assert.Equal(t, "/srv/images", cfg.Assets.Dir)
	assert.Equal(t, "https://relay.example.com/send", cfg.Contact.RelayURL)
	assert.Equal(t, "secret", cfg.Contact.APIKey)
	assert.Equal(t, "desk@example.com", cfg.Contact.Recipient)
	assert.Equal(t, defaultSender, cfg.Contact.Sender)
	assert.Equal(t, 2*time.Second, cfg.Contact.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 1280, cfg.Preview.Width)
	assert.Equal(t, defaultPreviewHeight, cfg.Preview.Height)
	assert.Equal(t, "elegant", cfg.Preview.LabelStyle)
}

func TestLoad_DefaultDirsResolveAgainstFile(t *testing.T) {
	path := writeConfig(t, `[server]
addr = "127.0.0.1:1"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	base := filepath.Dir(path)
	assert.Equal(t, filepath.Join(base, "data"), cfg.Content.Dir)
	assert.Equal(t, filepath.Join(base, "public"), cfg.Assets.Dir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid toml", `addr = [`, "parse config"},
		{"bad duration", "[server]\nread_timeout = \"soon\"\n", "server.read_timeout"},
		{"negative duration", "[contact]\ntimeout = \"-1s\"\n", "must be positive"},
		{"bad log format", "[log]\nformat = \"xml\"\n", "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
