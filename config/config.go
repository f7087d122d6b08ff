// Package config loads the site's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved site configuration.
type Config struct {
	Server  Server
	Content Content
	Assets  Assets
	Contact Contact
	Log     Log
	Preview Preview
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Content locates the catalog files.
type Content struct {
	Dir   string
	Watch bool
}

// Assets locates the static image directory.
type Assets struct {
	Dir string
}

// Contact configures the mail relay used by the contact form. An empty
// RelayURL logs submissions instead of sending them.
type Contact struct {
	RelayURL  string
	APIKey    string
	Recipient string
	Sender    string
	Timeout   time.Duration
}

// Log configures logging.
type Log struct {
	Level  string
	Format string
}

// Preview configures the desktop preview window.
type Preview struct {
	Width      int
	Height     int
	LabelStyle string
}

const (
	defaultAddr            = "127.0.0.1:8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	defaultContentDir      = "data"
	defaultAssetsDir       = "public"
	defaultContactTimeout  = 5 * time.Second
	defaultRecipient       = "hello@faceframebeauty.com"
	defaultSender          = "website@faceframebeauty.com"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultPreviewWidth    = 960
	defaultPreviewHeight   = 640
	defaultLabelStyle      = "standard"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            defaultAddr,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Content: Content{Dir: defaultContentDir, Watch: true},
		Assets:  Assets{Dir: defaultAssetsDir},
		Contact: Contact{
			Recipient: defaultRecipient,
			Sender:    defaultSender,
			Timeout:   defaultContactTimeout,
		},
		Log:     Log{Level: defaultLogLevel, Format: defaultLogFormat},
		Preview: Preview{Width: defaultPreviewWidth, Height: defaultPreviewHeight, LabelStyle: defaultLabelStyle},
	}
}

type rawConfig struct {
	Server struct {
		Addr            string `toml:"addr"`
		ReadTimeout     string `toml:"read_timeout"`
		WriteTimeout    string `toml:"write_timeout"`
		ShutdownTimeout string `toml:"shutdown_timeout"`
	} `toml:"server"`
	Content struct {
		Dir   string `toml:"dir"`
		Watch *bool  `toml:"watch"`
	} `toml:"content"`
	Assets struct {
		Dir string `toml:"dir"`
	} `toml:"assets"`
	Contact struct {
		RelayURL  string `toml:"relay_url"`
		APIKey    string `toml:"api_key"`
		Recipient string `toml:"recipient"`
		Sender    string `toml:"sender"`
		Timeout   string `toml:"timeout"`
	} `toml:"contact"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	Preview struct {
		Width      int    `toml:"width"`
		Height     int    `toml:"height"`
		LabelStyle string `toml:"label_style"`
	} `toml:"preview"`
}

// Load reads the TOML file at path. A missing file yields Default().
// Relative directories are resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	base := filepath.Dir(path)
	cfg.Server.Addr = orDefault(raw.Server.Addr, cfg.Server.Addr)
	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"server.read_timeout", raw.Server.ReadTimeout, &cfg.Server.ReadTimeout},
		{"server.write_timeout", raw.Server.WriteTimeout, &cfg.Server.WriteTimeout},
		{"server.shutdown_timeout", raw.Server.ShutdownTimeout, &cfg.Server.ShutdownTimeout},
		{"contact.timeout", raw.Contact.Timeout, &cfg.Contact.Timeout},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.raw, d.dst); err != nil {
			return Config{}, err
		}
	}

	cfg.Content.Dir = resolveDir(base, orDefault(raw.Content.Dir, cfg.Content.Dir))
	if raw.Content.Watch != nil {
		cfg.Content.Watch = *raw.Content.Watch
	}
	cfg.Assets.Dir = resolveDir(base, orDefault(raw.Assets.Dir, cfg.Assets.Dir))

	cfg.Contact.RelayURL = strings.TrimSpace(raw.Contact.RelayURL)
	cfg.Contact.APIKey = strings.TrimSpace(raw.Contact.APIKey)
	cfg.Contact.Recipient = orDefault(raw.Contact.Recipient, cfg.Contact.Recipient)
	cfg.Contact.Sender = orDefault(raw.Contact.Sender, cfg.Contact.Sender)

	cfg.Log.Level = strings.ToLower(orDefault(raw.Log.Level, cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(orDefault(raw.Log.Format, cfg.Log.Format))
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return Config{}, fmt.Errorf("parse config: log.format %q: want json or console", cfg.Log.Format)
	}

	if raw.Preview.Width > 0 {
		cfg.Preview.Width = raw.Preview.Width
	}
	if raw.Preview.Height > 0 {
		cfg.Preview.Height = raw.Preview.Height
	}
	cfg.Preview.LabelStyle = strings.ToLower(orDefault(raw.Preview.LabelStyle, cfg.Preview.LabelStyle))

	return cfg, nil
}

func parseDuration(key, raw string, dst *time.Duration) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("parse config: %s: must be positive, got %s", key, raw)
	}
	*dst = d
	return nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func resolveDir(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
