// Package config loads the web server configuration from defaults, an
// optional YAML file and NUTRIGLOW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates nested keys: NUTRIGLOW_SERVER__ADDR -> server.addr.
const EnvPrefix = "NUTRIGLOW_"

// DefaultPath is the config file consulted when no --config flag is given.
const DefaultPath = "nutriglow.yaml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Server     Server     `koanf:"server"`
	Site       Site       `koanf:"site"`
	Session    Session    `koanf:"session"`
	Content    Content    `koanf:"content"`
	Submission Submission `koanf:"submission"`
	Chat       Chat       `koanf:"chat"`
	Contact    Contact    `koanf:"contact"`
	ViewState  ViewState  `koanf:"viewstate"`
	CORS       CORS       `koanf:"cors"`
	Analytics  Analytics  `koanf:"analytics"`
	Log        Log        `koanf:"log"`
}

type Server struct {
	Addr            string        `koanf:"addr"`
	TemplatesDir    string        `koanf:"templates_dir"`
	PublicDir       string        `koanf:"public_dir"`
	LocalesDir      string        `koanf:"locales_dir"`
	Dev             bool          `koanf:"dev"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type Site struct {
	Name        string `koanf:"name"`
	BaseURL     string `koanf:"base_url"`
	DefaultLang string `koanf:"default_lang"`
}

type Session struct {
	SigningKey string `koanf:"signing_key"`
	Secure     bool   `koanf:"secure"`
}

// Content points at an optional remote CMS. Empty BaseURL serves embedded data.
type Content struct {
	BaseURL  string        `koanf:"base_url"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
	Timeout  time.Duration `koanf:"timeout"`
}

// Submission points at the form intake service. Empty BaseURL acknowledges locally.
type Submission struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

type Chat struct {
	ReplyDelay time.Duration `koanf:"reply_delay"`
}

type Contact struct {
	ResetDelay time.Duration `koanf:"reset_delay"`
}

type ViewState struct {
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type CORS struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
	MaxAge         int      `koanf:"max_age"`
}

type Analytics struct {
	GA4MeasurementID string `koanf:"ga4_measurement_id"`
	GTMContainerID   string `koanf:"gtm_container_id"`
	SegmentWriteKey  string `koanf:"segment_write_key"`
	Debug            bool   `koanf:"debug"`
}

type Log struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			TemplatesDir:    "templates",
			PublicDir:       "public",
			LocalesDir:      "locales",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Site: Site{
			Name:        "NutriGlow Wellness",
			BaseURL:     "http://localhost:8080",
			DefaultLang: "en",
		},
		Content: Content{
			CacheTTL: 5 * time.Minute,
			Timeout:  5 * time.Second,
		},
		Submission: Submission{
			Timeout: 8 * time.Second,
		},
		Chat: Chat{
			ReplyDelay: time.Second,
		},
		Contact: Contact{
			ResetDelay: 3 * time.Second,
		},
		ViewState: ViewState{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
		},
		CORS: CORS{
			AllowedOrigins: []string{"*"},
			MaxAge:         300,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Cloud Run injects PORT; an explicit server.addr still wins.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && !k.Exists("server.addr") {
		cfg.Server.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Server.TemplatesDir) == "" {
		return fmt.Errorf("%w: server.templates_dir is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Site.Name) == "" {
		return fmt.Errorf("%w: site.name is required", ErrInvalid)
	}
	if err := checkURL("site.base_url", c.Site.BaseURL, true); err != nil {
		return err
	}
	if err := checkURL("content.base_url", c.Content.BaseURL, false); err != nil {
		return err
	}
	if err := checkURL("submission.base_url", c.Submission.BaseURL, false); err != nil {
		return err
	}
	if c.Chat.ReplyDelay <= 0 {
		return fmt.Errorf("%w: chat.reply_delay must be positive", ErrInvalid)
	}
	if c.Contact.ResetDelay <= 0 {
		return fmt.Errorf("%w: contact.reset_delay must be positive", ErrInvalid)
	}
	if c.ViewState.TTL <= 0 || c.ViewState.SweepInterval <= 0 {
		return fmt.Errorf("%w: viewstate.ttl and viewstate.sweep_interval must be positive", ErrInvalid)
	}
	if c.Content.CacheTTL < 0 {
		return fmt.Errorf("%w: content.cache_ttl must be non-negative", ErrInvalid)
	}
	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("%w: cors.max_age must be non-negative", ErrInvalid)
	}
	return nil
}

func checkURL(key, raw string, required bool) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return fmt.Errorf("%w: %s is required", ErrInvalid, key)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL, got %q", ErrInvalid, key, raw)
	}
	return nil
}

// Production reports whether cookies should be marked Secure.
func (c *Config) Production() bool {
	return c.Session.Secure || strings.HasPrefix(c.Site.BaseURL, "https://")
}
