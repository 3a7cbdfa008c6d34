package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Placeholder values shipped in the example config. Running with these still
// in place must fail before any network call is attempted.
const (
	PlaceholderURL     = "YOUR_BACKEND_URL"
	PlaceholderAnonKey = "YOUR_BACKEND_ANON_KEY"
)

type Config struct {
	Backend BackendConfig `toml:"backend"`
	Logging LoggingConfig `toml:"logging"`
}

type BackendConfig struct {
	URL     string `toml:"url"`
	AnonKey string `toml:"anon_key"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the preconditions for talking to the backend. The backend
// URL and key are supplied by the operator; without real values the client
// refuses to initialize rather than issue requests that can only fail.
func (c Config) Validate() error {
	rawURL := strings.TrimSpace(c.Backend.URL)
	key := strings.TrimSpace(c.Backend.AnonKey)
	if rawURL == "" || key == "" {
		return errors.New("backend url and anon key are required; set [backend] url and anon_key in config.toml")
	}
	if rawURL == PlaceholderURL || key == PlaceholderAnonKey {
		return errors.New("config.toml still contains placeholder backend credentials; replace them with your project's url and anon key")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("backend url is not valid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend url must be http or https, got %q", rawURL)
	}
	return nil
}

func (c Config) BackendURL() string {
	return strings.TrimRight(strings.TrimSpace(c.Backend.URL), "/")
}

func (c Config) AnonKey() string {
	return strings.TrimSpace(c.Backend.AnonKey)
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// LogFile returns the configured log path, or the default under the data dir.
func (c Config) LogFile() (string, error) {
	if path := strings.TrimSpace(c.Logging.File); path != "" {
		return path, nil
	}
	return LogPath()
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
